package handler

import (
	"time"

	"cims/internal/citizen"
)

// CitizenResponse is the wire shape of one registration.
type CitizenResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	Sex          string `json:"sex"`
	Status       string `json:"status"`
	ProvinceCode string `json:"province_code"`
	LGUCode      string `json:"lgu_code"`
	BarangayCode string `json:"barangay_code"`
	CalendarYear int    `json:"calendar_year"`
	PaymentDate  string `json:"payment_date,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toResponse(c *citizen.Citizen) CitizenResponse {
	resp := CitizenResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		MiddleName:   c.MiddleName,
		LastName:     c.LastName,
		BirthDate:    c.BirthDate.Format(dateLayout),
		Sex:          string(c.Sex),
		Status:       string(c.Status),
		ProvinceCode: c.ProvinceCode,
		LGUCode:      c.LGUCode,
		BarangayCode: c.BarangayCode,
		CalendarYear: c.CalendarYear,
		Remarks:      c.Remarks,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
	if c.PaymentDate != nil {
		resp.PaymentDate = c.PaymentDate.Format(dateLayout)
	}
	return resp
}

// ListResponse wraps a page of registrations.
type ListResponse struct {
	Citizens []CitizenResponse `json:"citizens"`
	Count    int               `json:"count"`
}

func toListResponse(records []citizen.Citizen) ListResponse {
	out := ListResponse{Citizens: make([]CitizenResponse, 0, len(records))}
	for i := range records {
		out.Citizens = append(out.Citizens, toResponse(&records[i]))
	}
	out.Count = len(out.Citizens)
	return out
}
