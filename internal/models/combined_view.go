package models

// CombinedStatus is the status shown for an account once its forwarding
// configuration has been taken into account
type CombinedStatus string

const (
	CombinedActive   CombinedStatus = "ACTIVE"
	CombinedInactive CombinedStatus = "INACTIVE"
	CombinedPaused   CombinedStatus = "PAUSED"
)

// IsValid reports whether s is a known combined status
func (s CombinedStatus) IsValid() bool {
	switch s {
	case CombinedActive, CombinedInactive, CombinedPaused:
		return true
	}
	return false
}

// CombinedView joins an Account with its optional ForwardingConfig.
// It is derived on every read and never persisted.
type CombinedView struct {
	ID                 string         `json:"id"`
	Email              string         `json:"email"`
	ForwardingEmail    string         `json:"forwarding_email"`
	Status             CombinedStatus `json:"status"`
	ForwardingConfigID string         `json:"forwarding_config_id,omitempty"`
	Role               Role           `json:"role"`
	AccountStatus      AccountStatus  `json:"account_status"`
}

// DeriveStatus computes the combined status of an account.
// An inactive account is always INACTIVE, an active account without
// forwarding is INACTIVE, otherwise the forwarding status wins.
func DeriveStatus(account *Account, forwarding *ForwardingConfig) CombinedStatus {
	if account.Status != AccountActive {
		return CombinedInactive
	}
	if forwarding == nil {
		return CombinedInactive
	}
	if forwarding.Status == ForwardingPaused {
		return CombinedPaused
	}
	return CombinedActive
}

// NewCombinedView builds the view row for an account and its forwarding
func NewCombinedView(account *Account, forwarding *ForwardingConfig) CombinedView {
	row := CombinedView{
		ID:            account.ID,
		Email:         account.Email,
		Status:        DeriveStatus(account, forwarding),
		Role:          account.Role,
		AccountStatus: account.Status,
	}
	if forwarding != nil {
		row.ForwardingEmail = forwarding.ForwardingEmail
		row.ForwardingConfigID = forwarding.ID
	}
	return row
}
