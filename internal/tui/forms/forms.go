// ABOUTME: Interactive huh forms for signup, new listings, reviews and profile edits
// ABOUTME: Form values are plain structs so flags and prompts share one validation path

package forms

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/charmbracelet/huh"
)

// Roles offered at signup
var Roles = []string{"seller", "buyer"}

// Categories offered for new listings
var Categories = []huh.Option[string]{
	huh.NewOption("Textbooks", "Textbooks"),
	huh.NewOption("Dorm Supplies", "Dorm Supplies"),
	huh.NewOption("Graduation Regalia", "Graduation"),
	huh.NewOption("Electronics", "Electronics"),
	huh.NewOption("Furniture", "Furniture"),
	huh.NewOption("Subscriptions", "Subscriptions"),
	huh.NewOption("Other", "Other"),
}

// MerchOptions offered on the profile edit form
var MerchOptions = []huh.Option[string]{
	huh.NewOption("Select category", ""),
	huh.NewOption("Books", "books"),
	huh.NewOption("Electronics", "electronics"),
	huh.NewOption("Furniture", "furniture"),
	huh.NewOption("Clothing", "clothing"),
	huh.NewOption("Sports Equipment", "sports"),
	huh.NewOption("Other", "other"),
}

var ratingOptions = []huh.Option[int]{
	huh.NewOption("★★★★★  Excellent", 5),
	huh.NewOption("★★★★   Good", 4),
	huh.NewOption("★★★    Okay", 3),
	huh.NewOption("★★     Fair", 2),
	huh.NewOption("★      Poor", 1),
}

// Signup holds the account creation fields
type Signup struct {
	Email string
	Name  string
	Role  string
	Phone string
	Merch string
}

// NewSignup returns signup values with the default role
func NewSignup() *Signup {
	return &Signup{Role: "seller"}
}

// Form builds the signup form bound to s
func (s *Signup) Form() *huh.Form {
	roleOptions := make([]huh.Option[string], 0, len(Roles))
	for _, r := range Roles {
		roleOptions = append(roleOptions, huh.NewOption(strings.ToUpper(r[:1])+r[1:], r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("john.smith@example.com").
				Value(&s.Email).
				Validate(ValidateEmail),
			huh.NewInput().
				Title("Full name").
				Placeholder("John Smith").
				Value(&s.Name).
				Validate(Required("name")),
			huh.NewSelect[string]().
				Title("Role").
				Options(roleOptions...).
				Value(&s.Role),
			huh.NewInput().
				Title("Phone number").
				Placeholder("+14155551234").
				Value(&s.Phone).
				Validate(Required("phone number")),
			huh.NewInput().
				Title("What do you sell?").
				Placeholder("furniture, electronics, books, etc.").
				Value(&s.Merch).
				Validate(Required("merch")),
		).Title("Create an account"),
	).WithTheme(Theme())
}

// Validate checks the values the form would check
func (s *Signup) Validate() error {
	return errors.Join(
		ValidateEmail(s.Email),
		Required("name")(s.Name),
		validateChoice("role", s.Role, Roles),
		Required("phone number")(s.Phone),
		Required("merch")(s.Merch),
	)
}

// Input converts the values into the signup payload
func (s *Signup) Input() *client.CreateUserInput {
	return &client.CreateUserInput{
		Email:       strings.TrimSpace(s.Email),
		Name:        strings.TrimSpace(s.Name),
		Role:        s.Role,
		PhoneNumber: strings.TrimSpace(s.Phone),
		Merch:       strings.TrimSpace(s.Merch),
	}
}

// Product holds the new-listing fields. Price and Quantity stay text
// until Input so prompts can show what was typed.
type Product struct {
	Name        string
	Category    string
	SellerID    string
	Description string
	Price       string
	Quantity    string
	Condition   string
	Available   bool
}

// NewProduct returns listing defaults, preselecting the first seller
func NewProduct(sellers []client.User) *Product {
	p := &Product{Quantity: "1", Available: true}
	if len(sellers) > 0 {
		p.SellerID = sellers[0].UserID
	}
	return p
}

// Form builds the listing form bound to p
func (p *Product) Form(sellers []client.User) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product name").
				Placeholder("e.g., Calculus Textbook 3rd Edition").
				Value(&p.Name).
				Validate(Required("product name")),
			huh.NewSelect[string]().
				Title("Category").
				Options(Categories...).
				Value(&p.Category),
			huh.NewSelect[string]().
				Title("Seller").
				Options(userOptions(sellers)...).
				Value(&p.SellerID),
		).Title("List a product"),
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				Placeholder("Describe your item's condition, features, and any other relevant details...").
				Value(&p.Description),
			huh.NewInput().
				Title("Price ($)").
				Placeholder("0.00").
				Value(&p.Price).
				Validate(ValidatePrice),
			huh.NewInput().
				Title("Quantity").
				Value(&p.Quantity).
				Validate(ValidateQuantity),
			huh.NewInput().
				Title("Condition").
				Placeholder("e.g., New, Like New, Good").
				Value(&p.Condition),
			huh.NewConfirm().
				Title("Availability").
				Affirmative("Available").
				Negative("Not Available").
				Value(&p.Available),
		).Title("Details"),
	).WithTheme(Theme())
}

// Validate checks the values the form would check
func (p *Product) Validate() error {
	return errors.Join(
		Required("product name")(p.Name),
		Required("category")(p.Category),
		Required("seller")(p.SellerID),
		ValidatePrice(p.Price),
		ValidateQuantity(p.Quantity),
	)
}

// Input converts the values into the listing payload
func (p *Product) Input() (*client.CreateProductInput, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(p.Price), 64)
	quantity, _ := strconv.Atoi(strings.TrimSpace(p.Quantity))
	availability := 0
	if p.Available {
		availability = 1
	}

	return &client.CreateProductInput{
		Name:         strings.TrimSpace(p.Name),
		Category:     p.Category,
		SellerID:     p.SellerID,
		Description:  strings.TrimSpace(p.Description),
		Availability: availability,
		Price:        price,
		Condition:    strings.TrimSpace(p.Condition),
		Quantity:     quantity,
	}, nil
}

// Review holds the new-review fields
type Review struct {
	WriterID string
	SellerID string
	Rating   int
	Comment  string
}

// NewReview preselects the first user as writer and the second as seller
func NewReview(users []client.User) *Review {
	r := &Review{Rating: 5}
	switch {
	case len(users) > 1:
		r.WriterID = users[0].UserID
		r.SellerID = users[1].UserID
	case len(users) == 1:
		r.WriterID = users[0].UserID
		r.SellerID = users[0].UserID
	}
	return r
}

// Form builds the review form bound to r
func (r *Review) Form(users []client.User) *huh.Form {
	options := userOptions(users)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Your account").
				Options(options...).
				Value(&r.WriterID),
			huh.NewSelect[string]().
				Title("Seller").
				Options(options...).
				Value(&r.SellerID),
			huh.NewSelect[int]().
				Title("Rating").
				Description("1 = Poor, 5 = Excellent").
				Options(ratingOptions...).
				Value(&r.Rating),
			huh.NewText().
				Title("Comment (optional)").
				Placeholder("Share details about your transaction experience, communication, item quality, etc...").
				Value(&r.Comment),
		).Title("Write a review"),
	).WithTheme(Theme())
}

// Validate checks the values the form would check
func (r *Review) Validate() error {
	return errors.Join(
		Required("writer")(r.WriterID),
		Required("seller")(r.SellerID),
		ValidateRating(r.Rating),
	)
}

// Input converts the values into the review payload
func (r *Review) Input() (*client.CreateReviewInput, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &client.CreateReviewInput{
		WriterID: r.WriterID,
		SellerID: r.SellerID,
		Rating:   r.Rating,
		Comment:  strings.TrimSpace(r.Comment),
	}, nil
}

// Profile holds the editable account fields
type Profile struct {
	Name  string
	Phone string
	Merch string
}

// NewProfile prefills the form from the signed-in user
func NewProfile(u *client.User) *Profile {
	if u == nil {
		return &Profile{}
	}
	return &Profile{
		Name:  u.Name,
		Phone: u.PhoneText(),
		Merch: u.MerchText(),
	}
}

// Form builds the profile edit form bound to p
func (p *Profile) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Placeholder("Enter your full name").
				Value(&p.Name).
				Validate(Required("name")),
			huh.NewInput().
				Title("Phone number").
				Placeholder("Enter your phone number").
				Value(&p.Phone),
			huh.NewSelect[string]().
				Title("What do you sell?").
				Options(MerchOptions...).
				Value(&p.Merch),
		).Title("Edit profile"),
	).WithTheme(Theme())
}

// Validate checks the values the form would check
func (p *Profile) Validate() error {
	return Required("name")(p.Name)
}

// Input converts the values into the profile update payload
func (p *Profile) Input() (*client.UpdateUserInput, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &client.UpdateUserInput{
		Name:        strings.TrimSpace(p.Name),
		PhoneNumber: strings.TrimSpace(p.Phone),
		Merch:       p.Merch,
	}, nil
}

// userOptions lists users as "Name (email)" choices keyed by user_id
func userOptions(users []client.User) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(users))
	for _, u := range users {
		label := u.Name
		if u.Email != "" {
			label = fmt.Sprintf("%s (%s)", u.Name, u.Email)
		}
		options = append(options, huh.NewOption(label, u.UserID))
	}
	return options
}

// Required returns a validator rejecting blank values
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// ValidateEmail accepts a single bare address
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// ValidatePrice accepts non-negative decimal prices
func ValidatePrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("price must be a number")
	}
	if v < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// ValidateQuantity accepts whole numbers of at least one
func ValidateQuantity(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("quantity must be a whole number")
	}
	if v < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

// ValidateRating accepts 1 through 5
func ValidateRating(v int) error {
	if v < 1 || v > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

func validateChoice(field, value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", field, strings.Join(choices, ", "))
}
