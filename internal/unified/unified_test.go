package unified_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/library"
	"github.com/blackwell-systems/libractl/internal/session"
	"github.com/blackwell-systems/libractl/internal/tui"
	"github.com/blackwell-systems/libractl/internal/unified"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// backend serves a tiny admin catalog and counts deletes. With lastPage
// above one every page repeats the same books.
type backend struct {
	mu       sync.Mutex
	deletes  []string
	books    []library.Book
	lastPage int
	pages    []string
}

func newBackend(t *testing.T) (*backend, *api.Client) {
	t.Helper()
	b := &backend{books: []library.Book{
		{ID: 1, Title: "Dune", Author: "Herbert", TotalCopies: 2, AvailableCopies: 1},
		{ID: 2, Title: "Emma", Author: "Austen", TotalCopies: 1},
	}}
	r := chi.NewRouter()
	r.Get("/api/admin/books", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		page, _ := strconv.Atoi(req.URL.Query().Get("page"))
		page = max(page, 1)
		b.pages = append(b.pages, strconv.Itoa(page))
		writeJSON(w, map[string]interface{}{
			"data": b.books,
			"meta": library.Pagination{CurrentPage: page, LastPage: max(b.lastPage, 1), PerPage: 10, Total: len(b.books) * max(b.lastPage, 1)},
		})
	})
	r.Delete("/api/admin/books/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		id := chi.URLParam(req, "id")
		b.deletes = append(b.deletes, id)
		kept := b.books[:0]
		for _, bk := range b.books {
			if strconv.FormatInt(bk.ID, 10) != id {
				kept = append(kept, bk)
			}
		}
		b.books = kept
		b.mu.Unlock()
		writeJSON(w, map[string]string{"message": "deleted"})
	})
	r.Get("/api/books", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []library.Book{{ID: 7, Title: "Middlemarch", Author: "Eliot", TotalCopies: 1, AvailableCopies: 1}})
	})
	r.Get("/api/user/borrowed-books", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []library.Loan{})
	})
	r.Get("/api/admin/dashboard-stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, library.Stats{TotalBooks: 2, TotalUsers: 5, ActiveBorrowings: 1, OverdueBooks: 1})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return b, api.New(srv.URL+"/api", func() string { return "tok" })
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) deleteCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.deletes)
}

func newModel(t *testing.T, admin bool) (*backend, unified.Model) {
	t.Helper()
	b, client := newBackend(t)
	role := library.RoleUser
	if admin {
		role = library.RoleAdmin
	}
	deps := &controller.Deps{
		Notify:  &unified.Bridge{},
		Confirm: controller.AlwaysConfirm{},
		Session: &session.Session{Token: "tok", User: library.User{Name: "Ada", Role: role}},
		Log:     zerolog.Nop(),
		Now:     func() time.Time { return fixedNow },
		PerPage: 10,
	}
	ctl := unified.Controllers{
		Dashboard:  controller.NewDashboardController(client, deps),
		Admin:      controller.NewAdminController(client, deps),
		Borrowings: controller.NewBorrowingsController(client, deps),
	}
	m := unified.New(ctl, unified.Options{
		Hub: tui.HubContext{UserName: "Ada", Admin: admin},
		Now: func() time.Time { return fixedNow },
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return b, m
}

// drain runs cmd and feeds every resulting message back into m. A footer
// highlight tick makes it wait out the highlight.
func drain(t *testing.T, m unified.Model, cmd tea.Cmd) unified.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		next, more := m.Update(msg)
		m = next.(unified.Model)
		queue = append(queue, more)
	}
	return m
}

func send(t *testing.T, m unified.Model, msg tea.Msg) unified.Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(unified.Model), cmd)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_MemberCannotOpenAdminViews(t *testing.T) {
	_, m := newModel(t, false)
	assert.Equal(t, unified.ViewHub, m.Current())
	assert.NotContains(t, ansi.Strip(m.View()), "Manage Books")

	m = send(t, m, unified.NavigateMsg{Target: unified.ViewAdminBooks})
	assert.Equal(t, unified.ViewHub, m.Current(), "member stays on the hub")
}

func TestModel_AdminBooksLoadsAndRenders(t *testing.T) {
	_, m := newModel(t, true)
	assert.Contains(t, ansi.Strip(m.View()), "Manage Books")

	m = send(t, m, unified.NavigateMsg{Target: unified.ViewAdminBooks})
	require.Equal(t, unified.ViewAdminBooks, m.Current())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Emma")
	assert.Contains(t, view, "page 1 of 1")
}

func TestModel_DeleteNeedsConfirmation(t *testing.T) {
	b, m := newModel(t, true)
	m = send(t, m, unified.NavigateMsg{Target: unified.ViewAdminBooks})

	m = send(t, m, keyMsg("d"))
	assert.Contains(t, ansi.Strip(m.View()), "Are you sure?")

	m = send(t, m, keyMsg("n"))
	assert.Equal(t, 0, b.deleteCount(), "declined delete sends nothing")
	assert.Contains(t, ansi.Strip(m.View()), "Dune")

	m = send(t, m, keyMsg("d"))
	m = send(t, m, keyMsg("y"))
	assert.Equal(t, 1, b.deleteCount())
	assert.Equal(t, []string{"1"}, b.deletes, "deletes the row under the cursor")
	view := ansi.Strip(m.View())
	assert.NotContains(t, view, "Dune")
	assert.Contains(t, view, "Emma")
}

func TestModel_StatsView(t *testing.T) {
	_, m := newModel(t, true)
	m = send(t, m, unified.NavigateMsg{Target: unified.ViewStats})
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Total users")
	assert.Contains(t, view, "5")
}

func TestModel_ToastShown(t *testing.T) {
	_, m := newModel(t, false)
	next, cmd := m.Update(tui.ToastMsg{Kind: tui.ToastSuccess, Text: "Book borrowed successfully"})
	assert.NotNil(t, cmd, "toast schedules its own dismissal")
	assert.Contains(t, ansi.Strip(next.(unified.Model).View()), "✓ Book borrowed successfully")
}

func TestModel_EscReturnsToHub(t *testing.T) {
	_, m := newModel(t, true)
	m = send(t, m, unified.NavigateMsg{Target: unified.ViewAdminBooks})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, unified.ViewHub, m.Current())
}

func TestBridge_DropsBeforeAttach(t *testing.T) {
	var b unified.Bridge
	b.Success("ignored")
	b.Error("ignored")
}

func TestModel_CatalogLocalSearch(t *testing.T) {
	_, m := newModel(t, false)
	m = send(t, m, unified.NavigateMsg{Target: unified.ViewCatalog})
	assert.Equal(t, unified.ViewCatalog, m.Current())
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Library Catalog")
	assert.Contains(t, view, "Middlemarch")
}

func TestModel_DigitJumpsToPage(t *testing.T) {
	b, m := newModel(t, true)
	b.mu.Lock()
	b.lastPage = 3
	b.mu.Unlock()

	m = send(t, m, unified.NavigateMsg{Target: unified.ViewAdminBooks})
	assert.Contains(t, ansi.Strip(m.View()), "page 1 of 3")

	m = send(t, m, keyMsg("3"))
	assert.Contains(t, ansi.Strip(m.View()), "page 3 of 3")

	m = send(t, m, keyMsg("9"))
	b.mu.Lock()
	got := append([]string(nil), b.pages...)
	b.mu.Unlock()
	assert.Equal(t, "3", got[len(got)-1], "page past the end clamps to the last page")
	assert.Contains(t, ansi.Strip(m.View()), "page 3 of 3")
}
