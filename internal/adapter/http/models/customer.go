package models

import (
	"errors"
	"strings"
)

type CreateCustomerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (r CreateCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	if !isEmail(r.Email) {
		errs = append(errs, "email is not valid")
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "phone is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateCustomerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (r UpdateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.Email) != "" && !isEmail(r.Email) {
		return errors.New("email is not valid")
	}
	return nil
}

type SetTransactionPinRequest struct {
	Pin string `json:"pin"`
}

func (r SetTransactionPinRequest) Validate() error {
	pin := strings.TrimSpace(r.Pin)
	if len(pin) < 4 || len(pin) > 6 || !digitsOnly(pin) {
		return errors.New("pin must be 4 to 6 digits")
	}
	return nil
}

type VerifyTransactionPinRequest struct {
	Pin string `json:"pin"`
}

func (r VerifyTransactionPinRequest) Validate() error {
	if strings.TrimSpace(r.Pin) == "" {
		return errors.New("pin is required")
	}
	return nil
}

type CustomerResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func isEmail(value string) bool {
	trimmed := strings.TrimSpace(value)
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return false
	}
	return strings.Contains(trimmed[at+1:], ".")
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
