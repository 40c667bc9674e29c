package handler

import (
	"net/http"
	"strconv"
	"time"

	"cims/internal/citizen"
	dErrors "cims/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// RegisterRequest is the wire shape for POST /citizens.
type RegisterRequest struct {
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	Sex          string `json:"sex"`
	ProvinceCode string `json:"province_code"`
	LGUCode      string `json:"lgu_code"`
	BarangayCode string `json:"barangay_code"`
	Remarks      string `json:"remarks,omitempty"`
}

// ToModel parses the request into a domain citizen. Date and enum parsing
// fails fast here so the service only ever sees well-formed values.
func (r RegisterRequest) ToModel() (*citizen.Citizen, error) {
	birthDate, err := time.Parse(dateLayout, r.BirthDate)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "birth_date must be YYYY-MM-DD")
	}
	sex, err := citizen.ParseSex(r.Sex)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return &citizen.Citizen{
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		BirthDate:    birthDate,
		Sex:          sex,
		ProvinceCode: r.ProvinceCode,
		LGUCode:      r.LGUCode,
		BarangayCode: r.BarangayCode,
		Remarks:      r.Remarks,
	}, nil
}

// UpdateStatusRequest is the wire shape for PUT /citizens/{id}/status.
type UpdateStatusRequest struct {
	Status      string `json:"status"`
	PaymentDate string `json:"payment_date,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

func (r UpdateStatusRequest) ParsedStatus() (citizen.Status, error) {
	st, err := citizen.ParseStatus(r.Status)
	if err != nil {
		return "", dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return st, nil
}

func (r UpdateStatusRequest) ParsedPaymentDate() (*time.Time, error) {
	if r.PaymentDate == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, r.PaymentDate)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "payment_date must be YYYY-MM-DD")
	}
	return &t, nil
}

// queryFromRequest maps list/export query parameters onto a store query.
func queryFromRequest(r *http.Request) citizen.Query {
	q := citizen.Query{
		ProvinceCode: r.URL.Query().Get("province"),
		LGUCode:      r.URL.Query().Get("lgu"),
		BarangayCode: r.URL.Query().Get("barangay"),
	}
	for _, raw := range r.URL.Query()["status"] {
		if st, err := citizen.ParseStatus(raw); err == nil {
			q.Statuses = append(q.Statuses, st)
		}
	}
	if from, err := time.Parse(dateLayout, r.URL.Query().Get("registered_from")); err == nil {
		q.RegisteredFrom = &from
	}
	if to, err := time.Parse(dateLayout, r.URL.Query().Get("registered_to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		q.RegisteredTo = &end
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		q.Offset = offset
	}
	return q
}
