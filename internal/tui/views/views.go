// ABOUTME: Lipgloss renderers for seller profiles, not-found and error screens
// ABOUTME: Pure functions of the data so the browser and tests render identically

package views

import (
	"fmt"
	"strings"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/tui/icons"
	"github.com/campusmarket/market-cli/internal/tui/styles"
	"github.com/campusmarket/market-cli/internal/tui/widgets"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	minWidth        = 40
	twoColumnWidth  = 100 // below this, columns stack and rating bars are hidden
	statBlockWidth  = 22
	ratingBarsWidth = 16
)

// SellerProfile renders the full seller page
func SellerProfile(p *client.SellerProfile, width int) string {
	if width < minWidth {
		width = minWidth
	}

	var sb strings.Builder
	sb.WriteString(sellerHeader(&p.Seller))
	sb.WriteString("\n\n")
	sb.WriteString(statistics(p, width))
	sb.WriteString("\n\n")

	products := productList(p.Products)
	reviews := reviewList(p.Reviews)

	if width >= twoColumnWidth {
		half := (width - 2) / 2
		left := lipgloss.NewStyle().Width(half).Render(products)
		right := lipgloss.NewStyle().Width(half).MarginLeft(2).Render(reviews)
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		sb.WriteString(products)
		sb.WriteString("\n\n")
		sb.WriteString(reviews)
	}

	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func sellerHeader(u *client.User) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(u.Name) + " " + widgets.RoleBadge(u.Role))
	sb.WriteString("\n")

	var details []string
	if u.Email != "" {
		details = append(details, icons.Email.String()+" "+u.Email)
	}
	if phone := u.PhoneText(); phone != "" {
		details = append(details, icons.Phone.String()+" "+phone)
	}
	if merch := u.MerchText(); merch != "" {
		details = append(details, "Sells "+merch)
	}
	sb.WriteString(styles.Subtitle.Render(strings.Join(details, "  ·  ")))
	return sb.String()
}

func statistics(p *client.SellerProfile, width int) string {
	s := p.Statistics
	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.StatBlock(icons.Product, "Products", fmt.Sprintf("%d", s.TotalProducts), "listed", statBlockWidth),
		" ",
		widgets.StatBlock(icons.Star, "Rating", fmt.Sprintf("%.1f / 5", s.AverageRating), styles.Stars(s.AverageRating), statBlockWidth),
		" ",
		widgets.StatBlock(icons.Review, "Reviews", fmt.Sprintf("%d", s.TotalReviews), "received", statBlockWidth),
	)
	if len(p.Reviews) == 0 || width < twoColumnWidth {
		return blocks
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks, "  ",
		widgets.RatingBars(widgets.CountRatings(p.Reviews), ratingBarsWidth))
}

func productList(products []client.Product) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Products (%d)", icons.Product.String(), len(products))))
	sb.WriteString("\n")

	if len(products) == 0 {
		sb.WriteString(styles.Subtitle.Render("No products listed yet."))
		return sb.String()
	}

	for i := range products {
		p := &products[i]
		line := styles.ValueStyle.Render(p.Name) + "  " + styles.PriceStyle.Render(fmt.Sprintf("$%.2f", p.Price))
		sb.WriteString(line)
		sb.WriteString("\n")

		meta := []string{widgets.AvailabilityBadge(p)}
		if badge := widgets.ConditionBadge(p); badge != "" {
			meta = append(meta, badge)
		}
		if p.Category != "" {
			meta = append(meta, styles.LabelStyle.Render(p.Category))
		}
		meta = append(meta, styles.LabelStyle.Render(fmt.Sprintf("qty %d", p.Quantity)))
		sb.WriteString(strings.Join(meta, " "))
		sb.WriteString("\n")

		description := "No description provided"
		if p.Description != nil && *p.Description != "" {
			description = *p.Description
		}
		sb.WriteString(styles.Subtitle.Render(description))
		sb.WriteString("\n")
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func reviewList(reviews []client.Review) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Reviews (%d)", icons.Review.String(), len(reviews))))
	sb.WriteString("\n")

	if len(reviews) == 0 {
		sb.WriteString(styles.Subtitle.Render("No reviews yet."))
		return sb.String()
	}

	for i := range reviews {
		r := &reviews[i]
		writer := r.WriterName
		if writer == "" {
			writer = r.WriterID
		}
		sb.WriteString(styles.Stars(float64(r.Rating)) + "  " + styles.ValueStyle.Render(writer))
		if date := shortDate(r.CreatedAt); date != "" {
			sb.WriteString("  " + styles.LabelStyle.Render(date))
		}
		sb.WriteString("\n")
		comment := r.CommentText()
		if comment == "" {
			comment = "No comment provided"
		}
		sb.WriteString(comment)
		sb.WriteString("\n")
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// shortDate trims RFC 3339 timestamps to their date
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// Checking renders the pending lookup state; spinner is the animated frame
func Checking(spinner, path string) string {
	return fmt.Sprintf("%s Checking %s ...", spinner, styles.ValueStyle.Render(path))
}

// NotFound renders the 404 screen
func NotFound(path string) string {
	var sb strings.Builder
	sb.WriteString(styles.StatusCritical.Render("404"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Title.Render("Page not found"))
	sb.WriteString("\n")
	if path != "" {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Nothing lives at %s.", path)))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render("Press b to go back to the seller list."))
	return sb.String()
}

// ErrorPanel renders a request failure
func ErrorPanel(message string) string {
	return styles.ErrorPanel.Render(icons.Critical.String() + " " + message)
}

// SellerColumns are the home list headings matching SellerRow
var SellerColumns = []string{"Name", "Selling", "Contact"}

// SellerRow returns the table cells for one seller on the home list
func SellerRow(u *client.User) []string {
	return []string{u.Name, orDash(u.MerchText()), orDash(u.PhoneText())}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
