package validation

import (
	"strings"
	"time"

	"propman-backend/internal/models"
)

// Form defaults applied to fields the client left out.
const (
	DefaultPaymentDueDay     = 5
	DefaultLateFeeDays       = 5
	DefaultLateFeePercentage = 10.0
	DefaultOccupants         = 1
)

// parseDate reads a field that already passed the datetime tag. Empty
// strings give the zero time.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(DateLayout, s)
	return t
}

func intOr(p *int, def int) *int {
	if p == nil {
		return &def
	}
	return p
}

type UnitRequest struct {
	ID          string  `json:"id"`
	UnitNumber  string  `json:"unit_number" validate:"required"`
	Bedrooms    int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int     `json:"bathrooms" validate:"gte=0"`
	Area        float64 `json:"area" validate:"gte=0"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=occupied vacant maintenance"`
	TenantID    string  `json:"tenant_id"`
}

type PropertyRequest struct {
	Name        string        `json:"name" validate:"required"`
	Address     string        `json:"address" validate:"required"`
	Type        string        `json:"type" validate:"oneof=apartment house commercial building lot"`
	Bedrooms    *int          `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *int          `json:"bathrooms" validate:"omitempty,gte=0"`
	Area        float64       `json:"area" validate:"gte=0"`
	Description string        `json:"description"`
	Status      string        `json:"status" validate:"oneof=occupied vacant maintenance"`
	ImageURL    string        `json:"image_url"`
	Units       []UnitRequest `json:"units" validate:"dive"`
}

func (r *PropertyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	if r.Type == "" {
		r.Type = string(models.PropertyTypeApartment)
	}
	if r.Status == "" {
		r.Status = string(models.StatusVacant)
	}
	for i := range r.Units {
		if r.Units[i].Status == "" {
			r.Units[i].Status = string(models.StatusVacant)
		}
	}
	return Struct(r)
}

func (r *PropertyRequest) Model() *models.Property {
	p := &models.Property{
		Name:        r.Name,
		Address:     r.Address,
		Type:        models.PropertyType(r.Type),
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Area:        r.Area,
		Description: r.Description,
		Status:      models.OccupancyStatus(r.Status),
		ImageURL:    r.ImageURL,
	}
	for _, u := range r.Units {
		p.Units = append(p.Units, models.PropertyUnit{
			ID:          u.ID,
			UnitNumber:  u.UnitNumber,
			Bedrooms:    u.Bedrooms,
			Bathrooms:   u.Bathrooms,
			Area:        u.Area,
			MonthlyRent: u.MonthlyRent,
			Status:      models.OccupancyStatus(u.Status),
			TenantID:    u.TenantID,
		})
	}
	return p
}

type TenantRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,mailbox"`
	Phone      string `json:"phone" validate:"required"`
	CPF        string `json:"cpf" validate:"required"`
	Occupants  *int   `json:"occupants" validate:"required,min=1"`
	PropertyID string `json:"property_id"`
	UnitID     string `json:"unit_id"`
	ContractID string `json:"contract_id"`
}

func (r *TenantRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Occupants = intOr(r.Occupants, DefaultOccupants)
	return Struct(r)
}

func (r *TenantRequest) Model() *models.Tenant {
	return &models.Tenant{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		CPF:        r.CPF,
		Occupants:  *r.Occupants,
		PropertyID: r.PropertyID,
		UnitID:     r.UnitID,
		ContractID: r.ContractID,
	}
}

type ContractRequest struct {
	PropertyID        string   `json:"property_id" validate:"required"`
	UnitID            string   `json:"unit_id"`
	TenantID          string   `json:"tenant_id" validate:"required"`
	StartDate         string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	MonthlyRent       float64  `json:"monthly_rent" validate:"gte=0"`
	DepositAmount     float64  `json:"deposit_amount" validate:"gte=0"`
	PaymentDueDay     *int     `json:"payment_due_day" validate:"required,min=1,max=31"`
	LateFeeDays       *int     `json:"late_fee_days" validate:"required,gte=0"`
	LateFeePercentage *float64 `json:"late_fee_percentage" validate:"required,gte=0,lte=100"`
	Status            string   `json:"status" validate:"oneof=active expired terminated"`
	ContractFile      string   `json:"contract_file"`
}

func (r *ContractRequest) Validate() error {
	r.PaymentDueDay = intOr(r.PaymentDueDay, DefaultPaymentDueDay)
	r.LateFeeDays = intOr(r.LateFeeDays, DefaultLateFeeDays)
	if r.LateFeePercentage == nil {
		pct := DefaultLateFeePercentage
		r.LateFeePercentage = &pct
	}
	if r.Status == "" {
		r.Status = string(models.ContractActive)
	}
	return Struct(r)
}

func (r *ContractRequest) Model() *models.Contract {
	return &models.Contract{
		PropertyID:        r.PropertyID,
		UnitID:            r.UnitID,
		TenantID:          r.TenantID,
		StartDate:         parseDate(r.StartDate),
		EndDate:           parseDate(r.EndDate),
		MonthlyRent:       r.MonthlyRent,
		DepositAmount:     r.DepositAmount,
		PaymentDueDay:     *r.PaymentDueDay,
		LateFeeDays:       *r.LateFeeDays,
		LateFeePercentage: *r.LateFeePercentage,
		Status:            models.ContractStatus(r.Status),
		ContractFile:      r.ContractFile,
	}
}

type PaymentRequest struct {
	ContractID    string  `json:"contract_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Date          string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status        string  `json:"status" validate:"oneof=paid pending overdue"`
	LateFee       float64 `json:"late_fee" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

func (r *PaymentRequest) Validate() error {
	if r.Status == "" {
		r.Status = string(models.PaymentPending)
	}
	return Struct(r)
}

func (r *PaymentRequest) Model() *models.Payment {
	return &models.Payment{
		ContractID:    r.ContractID,
		Amount:        r.Amount,
		Date:          parseDate(r.Date),
		DueDate:       parseDate(r.DueDate),
		Status:        models.PaymentStatus(r.Status),
		LateFee:       r.LateFee,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

type ExpenseRequest struct {
	PropertyID  string  `json:"property_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Category    string  `json:"category" validate:"oneof=maintenance utilities taxes insurance other"`
	Description string  `json:"description" validate:"required"`
	Receipt     string  `json:"receipt"`
	Recurring   bool    `json:"recurring"`
}

func (r *ExpenseRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	if r.Category == "" {
		r.Category = string(models.CategoryOther)
	}
	return Struct(r)
}

func (r *ExpenseRequest) Model() *models.Expense {
	return &models.Expense{
		PropertyID:  r.PropertyID,
		Amount:      r.Amount,
		Date:        parseDate(r.Date),
		Category:    models.ExpenseCategory(r.Category),
		Description: r.Description,
		Receipt:     r.Receipt,
		Recurring:   r.Recurring,
	}
}
