package notification

import "time"

// Role scopes a notification to one operational team's inbox.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSales     Role = "sales"
	RoleLogistics Role = "logistics"
	RoleCook      Role = "cook"
)

type Notification struct {
	ID        string    `yaml:"id" json:"id"`
	Text      string    `yaml:"text" json:"text"`
	Role      Role      `yaml:"role" json:"role"`
	BudgetID  string    `yaml:"budget_id,omitempty" json:"budgetId,omitempty"`
	Read      bool      `yaml:"read" json:"read"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
}
