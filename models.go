package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CustomerStatus is the customer's lifecycle status
type CustomerStatus = string

const (
	// CustomerStatusProspect is a registered customer that has not activated yet
	CustomerStatusProspect CustomerStatus = "prospect"
	// CustomerStatusActivated is a customer with issued credentials
	CustomerStatusActivated CustomerStatus = "activated"
)

// UserStatus is the user's status
type UserStatus = string

const (
	// UserStatusActive is the only status this package issues
	UserStatusActive UserStatus = "active"
)

// Customer is the customer model
type Customer struct {
	bun.BaseModel        `bun:"table:customers,alias:cst"`
	ID                   uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName            string         `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName             string         `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email                string         `bun:"email,notnull,unique" json:"email,omitempty"`
	Mobile               int64          `bun:"mobile,notnull,unique" json:"mobile,omitempty"`
	Phone                string         `bun:"phone" json:"phone,omitempty"`
	Address              string         `bun:"address" json:"address,omitempty"`
	CountryID            *int64         `bun:"country_id" json:"country_id,omitempty"`
	CityID               *int64         `bun:"city_id" json:"city_id,omitempty"`
	Status               CustomerStatus `bun:"status,notnull" json:"status,omitempty"`
	EmailActivationToken *string        `bun:"email_activation_token,nullzero" json:"email_activation_token,omitempty"`
	CreatedOn            *time.Time     `bun:"created_on,nullzero,default:current_timestamp" json:"created_on,omitempty"`
	ModifiedOn           *time.Time     `bun:"modified_on,nullzero,default:current_timestamp" json:"modified_on,omitempty"`
	CreatedBy            *uuid.UUID     `bun:"created_by,nullzero,type:uuid" json:"created_by,omitempty"`
	ModifiedBy           *uuid.UUID     `bun:"modified_by,nullzero,type:uuid" json:"modified_by,omitempty"`
}

// IsActivated reports whether credentials have been issued for this
// customer. The stored status follows the presence of a User record,
// the activation flow flips it when the User is created.
func (c *Customer) IsActivated() bool {
	return c.Status == CustomerStatusActivated
}

// User is the credentials record created when a customer activates.
// Created exactly once, never mutated by this package afterward.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CustomerID    uuid.UUID  `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	Customer      *Customer  `bun:"rel:belongs-to,join:customer_id=id" json:"customer,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"password_hash,omitempty"`
	Status        UserStatus `bun:"status,notnull" json:"status,omitempty"`
	ActivatedOn   *time.Time `bun:"activated_on,nullzero" json:"activated_on,omitempty"`
	CreatedOn     *time.Time `bun:"created_on,nullzero,default:current_timestamp" json:"created_on,omitempty"`
	ModifiedOn    *time.Time `bun:"modified_on,nullzero,default:current_timestamp" json:"modified_on,omitempty"`
	CreatedBy     *uuid.UUID `bun:"created_by,nullzero,type:uuid" json:"created_by,omitempty"`
	ModifiedBy    *uuid.UUID `bun:"modified_by,nullzero,type:uuid" json:"modified_by,omitempty"`

	// Third party linked identity columns live on the table but are
	// never touched by the account lifecycle flows.
	FBLinked     *bool   `bun:"fb_linked" json:"fb_linked,omitempty"`
	FBID         *string `bun:"fb_id" json:"fb_id,omitempty"`
	FBToken      *string `bun:"fb_token" json:"-"`
	GoogleLinked *bool   `bun:"google_linked" json:"google_linked,omitempty"`
	GoogleID     *string `bun:"google_id" json:"google_id,omitempty"`
	GoogleToken  *string `bun:"google_token" json:"-"`
}

// Country is a reference record used to validate customer drafts
type Country struct {
	bun.BaseModel `bun:"table:countries,alias:ctr"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string `bun:"name,notnull" json:"name,omitempty"`
	Code          string `bun:"code" json:"code,omitempty"`
}

// City is a reference record scoped to a country
type City struct {
	bun.BaseModel `bun:"table:cities,alias:cty"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	CountryID     int64  `bun:"country_id,notnull" json:"country_id,omitempty"`
	Name          string `bun:"name,notnull" json:"name,omitempty"`
}

// EmailTemplateType selects which stored template a notification uses
type EmailTemplateType = string

const (
	// EmailTemplateRegistration carries the activation code
	EmailTemplateRegistration EmailTemplateType = "registration"
	// EmailTemplateActivation carries the issued credentials
	EmailTemplateActivation EmailTemplateType = "activation"
)

// EmailTemplate is a stored, pre-authored notification template. The
// HTML body uses placeholders (activationCode, userName, password)
// interpolated by RenderEmailTemplate.
type EmailTemplate struct {
	bun.BaseModel `bun:"table:email_templates,alias:etpl"`
	ID            int64             `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Type          EmailTemplateType `bun:"template_type,notnull,unique" json:"template_type,omitempty"`
	From          string            `bun:"sender,notnull" json:"from,omitempty"`
	Subject       string            `bun:"subject,notnull" json:"subject,omitempty"`
	Text          string            `bun:"body_text" json:"text,omitempty"`
	HTML          string            `bun:"body_html,notnull" json:"html,omitempty"`
}
