// ABOUTME: Canonical marketplace entities exchanged with the composite backend
// ABOUTME: Normalizes the field-name variants the backend has shipped into one schema

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
)

// User is a marketplace account. Sellers are users with products listed.
type User struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email,omitempty"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phonenumber"`
	Merch       *string `json:"merch"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// MerchText returns what the user sells, or "" when unset
func (u *User) MerchText() string {
	if u.Merch == nil {
		return ""
	}
	return *u.Merch
}

// PhoneText returns the user's phone number, or "" when unset
func (u *User) PhoneText() string {
	if u.PhoneNumber == nil {
		return ""
	}
	return *u.PhoneNumber
}

// Product is a listing. Decoding accepts both the product_* and prod_*
// field families, and seller_info as an alias of seller_id.
type Product struct {
	ID           string
	Name         string
	Category     string
	SellerID     string
	Description  *string
	Availability int
	Price        float64
	Condition    *string
	Quantity     int
	CreatedAt    string
	UpdatedAt    string
}

// Available reports whether the listing can still be bought
func (p *Product) Available() bool {
	return p.Availability > 0
}

type productWire struct {
	ProductID    string          `json:"product_id,omitempty"`
	ProdID       string          `json:"prod_id,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	ProdName     string          `json:"prod_name,omitempty"`
	Category     string          `json:"category"`
	SellerID     string          `json:"seller_id,omitempty"`
	SellerInfo   string          `json:"seller_info,omitempty"`
	Description  *string         `json:"description"`
	Availability json.RawMessage `json:"availability,omitempty"`
	Price        float64         `json:"price"`
	Condition    *string         `json:"condition"`
	Quantity     int             `json:"quantity"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	availability, err := parseAvailability(w.Availability)
	if err != nil {
		return err
	}

	*p = Product{
		ID:           firstNonEmpty(w.ProductID, w.ProdID),
		Name:         firstNonEmpty(w.ProductName, w.ProdName),
		Category:     w.Category,
		SellerID:     firstNonEmpty(w.SellerID, w.SellerInfo),
		Description:  w.Description,
		Availability: availability,
		Price:        w.Price,
		Condition:    w.Condition,
		Quantity:     w.Quantity,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	if p.ID == "" {
		slog.Warn("Product without identifier", "name", p.Name, "seller_id", p.SellerID)
	}
	return nil
}

// MarshalJSON writes the canonical product_* field family
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productWire{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Category:     p.Category,
		SellerID:     p.SellerID,
		Description:  p.Description,
		Availability: json.RawMessage(fmt.Sprintf("%d", p.Availability)),
		Price:        p.Price,
		Condition:    p.Condition,
		Quantity:     p.Quantity,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}

// parseAvailability accepts a count, a boolean, or null
func parseAvailability(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		if flag {
			return 1, nil
		}
		return 0, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("invalid availability %s", raw)
	}
	return int(n), nil
}

// Review is written by one user about a seller. Decoding accepts stars as
// an alias of rating and latest_update as an alias of updated_at.
type Review struct {
	ID         string
	WriterID   string
	WriterName string
	SellerID   string
	Rating     int
	Comment    *string
	CreatedAt  string
	UpdatedAt  string
}

// CommentText returns the review body, or "" when unset
func (r *Review) CommentText() string {
	if r.Comment == nil {
		return ""
	}
	return *r.Comment
}

type reviewWire struct {
	ReviewID     string   `json:"review_id,omitempty"`
	WriterID     string   `json:"writer_id"`
	WriterName   string   `json:"writer_name,omitempty"`
	SellerID     string   `json:"seller_id,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Stars        *float64 `json:"stars,omitempty"`
	Comment      *string  `json:"comment"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	LatestUpdate string   `json:"latest_update,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Review) UnmarshalJSON(data []byte) error {
	var w reviewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	rating := w.Rating
	if rating == nil {
		rating = w.Stars
	}

	*r = Review{
		ID:         w.ReviewID,
		WriterID:   w.WriterID,
		WriterName: w.WriterName,
		SellerID:   w.SellerID,
		Comment:    w.Comment,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  firstNonEmpty(w.UpdatedAt, w.LatestUpdate),
	}
	if rating != nil {
		r.Rating = int(math.Round(*rating))
	}
	if r.ID == "" {
		slog.Warn("Review without identifier", "writer_id", r.WriterID, "seller_id", r.SellerID)
	}
	return nil
}

// MarshalJSON writes the canonical review fields
func (r Review) MarshalJSON() ([]byte, error) {
	rating := float64(r.Rating)
	return json.Marshal(reviewWire{
		ReviewID:   r.ID,
		WriterID:   r.WriterID,
		WriterName: r.WriterName,
		SellerID:   r.SellerID,
		Rating:     &rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	})
}

// SellerStatistics is derived by the backend from a seller's products and reviews
type SellerStatistics struct {
	TotalProducts int     `json:"totalProducts"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// SellerProfile is the aggregate read behind a seller page
type SellerProfile struct {
	Seller     User             `json:"seller"`
	Products   []Product        `json:"products"`
	Reviews    []Review         `json:"reviews"`
	Statistics SellerStatistics `json:"statistics"`
}

// CreateUserInput is the signup payload
type CreateUserInput struct {
	Email       string `json:"email,omitempty"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Merch       string `json:"merch"`
}

// CreateProductInput is the new-listing payload
type CreateProductInput struct {
	Name         string  `json:"product_name"`
	Category     string  `json:"category"`
	SellerID     string  `json:"seller_id"`
	Description  string  `json:"description"`
	Availability int     `json:"availability"`
	Price        float64 `json:"price"`
	Condition    string  `json:"condition"`
	Quantity     int     `json:"quantity"`
}

// CreateReviewInput is the new-review payload
type CreateReviewInput struct {
	WriterID string `json:"writer_id"`
	SellerID string `json:"seller_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// UpdateUserInput is the profile-edit payload
type UpdateUserInput struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phonenumber"`
	Merch       string `json:"merch"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
