package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/dashboard"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dustin/go-humanize"
)

type styles struct {
	Title lipgloss.Style
	Bold  lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Bold:  lipgloss.NewStyle().Bold(true),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
		Good:  lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
}

// table renders rows of plain cells with a header line and "|" separators.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) add(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) view(st styles) string {
	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(st.Title.Render(t.title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	head := st.Bold.Padding(0, 1)
	body := st.Body.Padding(0, 1)
	sep := st.Muted.Render("|")

	line := func(cells []string, style lipgloss.Style) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	line(t.headers, head)
	sb.WriteString(st.Muted.Render(strings.Repeat("-", max(total, 0))))
	sb.WriteString("\n")
	if len(t.rows) == 0 {
		sb.WriteString(st.Muted.Render("  (empty)"))
		sb.WriteString("\n")
	}
	for _, row := range t.rows {
		line(row, body)
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// rowNumber is the 1-based number shown for the i-th row of a page.
func rowNumber(i int) string {
	return strconv.Itoa(i + 1)
}

func renderUsers(st styles, rows []models.User, busy func(string) bool) string {
	t := newTable("Users", "#", "Name", "Phone", "Verified", "Special", "ID")
	for i, u := range rows {
		special := yesNo(u.IsSpecial)
		if busy != nil && busy(u.ID) {
			special += " …"
		}
		t.add(rowNumber(i), u.FullName(), u.PhoneNumber, yesNo(u.IsVerified), special, u.ID)
	}
	return t.view(st)
}

func posted(a models.Ad, now time.Time) string {
	created, ok := a.Created()
	if !ok {
		return a.CreateDate
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

func price(a models.Ad) string {
	return strings.TrimSpace(a.Price + " " + a.CurrencyName)
}

func renderAds(st styles, rows []models.Ad, now time.Time) string {
	t := newTable("Pending ads", "#", "Title", "Price", "Category", "City", "Pictures", "Posted", "ID")
	for i, a := range rows {
		t.add(rowNumber(i), a.AdTitle, price(a), a.CategoryName, a.CityName,
			fmt.Sprintf("%d/%d", a.PictureCount(), models.AdImageSlots), posted(a, now), a.ID)
	}
	return t.view(st)
}

// pictureSummary describes one image slot without dumping its data.
func pictureSummary(src string) string {
	if src == "" {
		return "-"
	}
	data, mediaType, err := models.DecodeDataURL(models.DataURL(src))
	if err != nil {
		return "unreadable"
	}
	return fmt.Sprintf("%s, %s", mediaType, humanize.Bytes(uint64(len(data))))
}

func renderAd(st styles, a models.Ad, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(a.AdTitle))
	sb.WriteString("\n")

	field := func(name, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(st.Bold.Render(fmt.Sprintf("%-12s", name)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	field("ID", a.ID)
	field("Price", price(a))
	field("Category", strings.TrimSuffix(a.CategoryName+" / "+a.SubCategoryName, " / "))
	field("City", strings.TrimSuffix(a.CityName+", "+a.RegionName, ", "))
	field("Seller", a.UserName)
	field("Phone", a.UserPhone)
	field("Posted", posted(a, now))
	field("Description", a.Description)

	for i, src := range a.Pictures() {
		field(fmt.Sprintf("Picture %d", i+1), pictureSummary(src))
	}
	sb.WriteString(st.Muted.Render("approve | reject | close"))
	sb.WriteString("\n")
	return sb.String()
}

func renderImages(st styles, assets []models.ImageAsset) string {
	t := newTable("Images", "#", "ID", "Image")
	for i, a := range assets {
		id := a.ID
		if a.Provisional {
			id += " (pending)"
		}
		t.add(rowNumber(i), id, pictureSummary(a.Source))
	}
	return t.view(st)
}

func renderDashboard(st styles, c dashboard.Counters) string {
	t := newTable("Dashboard", "Users", "Pending ads", "Approved ads")
	t.add(c.Users, c.PendingAds, c.ApprovedAds)
	out := t.view(st)
	if !c.Available {
		out += st.Muted.Render("Counters are unavailable right now.") + "\n"
	}
	return out
}

func renderPager(st styles, ps collection.PageState, w collection.Window, all, visible int) string {
	var sb strings.Builder

	nav := func(label string, enabled bool) {
		if enabled {
			sb.WriteString(st.Bold.Render(label))
		} else {
			sb.WriteString(st.Muted.Render(label))
		}
		sb.WriteString(" ")
	}
	nav("«", w.HasPrev)
	nav("‹", w.HasPrev)
	for _, p := range w.Pages {
		label := strconv.Itoa(p)
		if p == ps.CurrentPage {
			label = "[" + label + "]"
		}
		sb.WriteString(label)
		sb.WriteString(" ")
	}
	nav("›", w.HasNext)
	nav("»", w.HasNext)

	sb.WriteString(fmt.Sprintf("  Page %d of %d", ps.CurrentPage, ps.TotalPages))
	if visible != all {
		sb.WriteString(fmt.Sprintf(" (%d of %d shown)", visible, all))
	} else {
		sb.WriteString(fmt.Sprintf(" (%d)", all))
	}
	sb.WriteString("\n")
	return sb.String()
}
