package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/couponadmin/internal/client/guard"
	"github.com/dmitrijs2005/couponadmin/internal/client/models"
	"github.com/dmitrijs2005/couponadmin/internal/client/services"
)

var (
	errUsage           = errors.New("usage")
	errUnknownResource = errors.New("unknown resource")
	errAccessDenied    = errors.New("access denied")
)

// resource binds a REST resource to its table layout and the role needed
// to browse it.
type resource struct {
	required models.Role
	headers  []string
	list     func(ctx context.Context, f services.Filters) ([][]string, models.PaginationMeta, error)
	show     func(ctx context.Context, id int64) (any, error)
	count    func(ctx context.Context) (map[string]int, error)
}

func bind[T any](r *services.Resource[T], required models.Role, headers []string, row func(T) []string) resource {
	return resource{
		required: required,
		headers:  headers,
		list: func(ctx context.Context, f services.Filters) ([][]string, models.PaginationMeta, error) {
			page, err := r.FindMany(ctx, f)
			if err != nil {
				return nil, models.PaginationMeta{}, err
			}
			rows := make([][]string, 0, len(page.Data))
			for _, item := range page.Data {
				rows = append(rows, row(item))
			}
			return rows, page.Meta, nil
		},
		show: func(ctx context.Context, itemID int64) (any, error) {
			return r.FindOne(ctx, itemID)
		},
		count: r.Count,
	}
}

func resourceNames() []string {
	return []string{"requests", "coupons", "categories", "users", "departments"}
}

func (a *App) resources() map[string]resource {
	c := a.catalog
	return map[string]resource{
		"requests": bind(c.CouponRequests, models.RoleManager,
			[]string{"ID", "Amount", "Status", "Customer", "Category", "Created"},
			func(r models.CouponRequest) []string {
				return []string{id(r.ID), money(r.Amount), string(r.Status), r.Information.CustomerName, refName(r.Category), date(r.CreatedAt)}
			}),
		"coupons": bind(c.Coupons, models.RoleManager,
			[]string{"ID", "Code", "Amount", "Status", "Assigned"},
			func(cp models.Coupon) []string {
				return []string{id(cp.ID), cp.Code, money(cp.Amount), string(cp.Status), datePtr(cp.AssignedAt)}
			}),
		"categories": bind(c.Categories, models.RoleManager,
			[]string{"ID", "Name", "Selectable", "Auto approval", "Duplicate window"},
			func(cat models.Category) []string {
				limit := "-"
				if cat.AutoApprovalLimit != nil {
					limit = money(*cat.AutoApprovalLimit)
				}
				return []string{id(cat.ID), cat.Name, strconv.FormatBool(cat.IsSelectable), limit, strconv.Itoa(cat.DuplicateWindow)}
			}),
		"users": bind(c.Users, models.RoleAdmin,
			[]string{"ID", "Name", "Email", "Role", "Department", "Active"},
			func(u models.User) []string {
				return []string{id(u.ID), u.Name, u.Email, string(u.Role), refName(u.Department), strconv.FormatBool(u.IsActive())}
			}),
		"departments": bind(c.Departments, models.RoleAdmin,
			[]string{"ID", "Name", "Description", "Active"},
			func(d models.Department) []string {
				return []string{id(d.ID), d.Name, d.Description, strconv.FormatBool(d.DeactivatedAt == nil)}
			}),
	}
}

// lookup resolves the resource named in args and checks access to it.
func (a *App) lookup(args []string) (resource, error) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Resources:", strings.Join(resourceNames(), ", "))
		return resource{}, errUsage
	}
	res, ok := a.resources()[args[0]]
	if !ok {
		fmt.Fprintln(a.out, "Unknown resource:", args[0])
		return resource{}, errUnknownResource
	}
	if d := guard.New(a.manager.Store(), res.required).Decide(); d.Status != guard.StatusAllowed {
		fmt.Fprintln(a.out, d.Message)
		return resource{}, errAccessDenied
	}
	return res, nil
}

// List prints one page of a resource. Arguments after the resource name
// are key=value filters; a bare number selects the page.
func (a *App) List(ctx context.Context, args []string) error {
	res, err := a.lookup(args)
	if err != nil {
		return err
	}
	f, err := parseFilters(args[1:])
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	rows, meta, err := res.list(ctx, f)
	if err != nil {
		a.log.Debug(ctx, "list failed", "resource", args[0], "error", err)
		return err
	}

	renderTable(a.out, res.headers, rows)
	fmt.Fprintf(a.out, "Page %d of %d (%d total)\n", meta.CurrentPage, meta.PageCount, meta.TotalCount)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: show <resource> <id>")
		return errUsage
	}
	res, err := a.lookup(args)
	if err != nil {
		return err
	}
	itemID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || itemID <= 0 {
		fmt.Fprintln(a.out, "Invalid id:", args[1])
		return errUsage
	}

	item, err := res.show(ctx, itemID)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

func (a *App) Count(ctx context.Context, args []string) error {
	res, err := a.lookup(args)
	if err != nil {
		return err
	}
	counts, err := res.count(ctx)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s: %d\n", k, counts[k])
	}
	return nil
}

func parseFilters(args []string) (services.Filters, error) {
	var f services.Filters
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			page, err := strconv.Atoi(arg)
			if err != nil {
				return f, fmt.Errorf("bad filter %q, want key=value or a page number", arg)
			}
			f.Page = page
			continue
		}

		var err error
		switch key {
		case "page":
			f.Page, err = strconv.Atoi(value)
		case "pageSize":
			f.PageSize, err = strconv.Atoi(value)
		case "sortBy":
			f.SortBy = value
		case "sortOrder":
			f.SortOrder = services.SortOrder(value)
		default:
			if f.Extra == nil {
				f.Extra = map[string]string{}
			}
			f.Extra[key] = value
		}
		if err != nil {
			return f, fmt.Errorf("bad %s: %w", key, err)
		}
	}
	return f, f.Validate()
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(w, t.String())
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "ID:         %d\n", u.ID)
	fmt.Fprintf(w, "Name:       %s\n", u.Name)
	fmt.Fprintf(w, "Email:      %s\n", u.Email)
	fmt.Fprintf(w, "Role:       %s\n", u.Role)
	fmt.Fprintf(w, "Department: %s\n", refName(u.Department))
	fmt.Fprintf(w, "Active:     %t\n", u.IsActive())
	fmt.Fprintf(w, "Last login: %s\n", datePtr(u.LastLogin))
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func refName(r *models.Ref) string {
	if r == nil || r.Name == "" {
		return "-"
	}
	return r.Name
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func datePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return date(*t)
}
