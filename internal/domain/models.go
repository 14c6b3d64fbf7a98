package domain

import "time"

// Planes de suscripción del producto. Informativos para el cliente;
// el backend los usa para la cuota diaria de mensajes.
const (
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Roles válidos para un mensaje dentro de un chat.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	SubscriptionPlan string    `json:"subscription_plan"`
	PasswordHash     string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// Chat pertenece a exactamente un usuario. El backend es dueño del título
// y del orden de la lista (updated_at descendente).
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID        string    `json:"id,omitempty"`
	ChatID    string    `json:"chat_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
