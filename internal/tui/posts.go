package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wisalhq/wisal-admin/internal/api"
)

// postsLoadedMsg carries one page of posts
type postsLoadedMsg struct {
	list *api.ListPostsResponse
	err  error
}

// postPublishedMsg carries the outcome of publishing a draft
type postPublishedMsg struct {
	post *api.Post
	err  error
}

// postsScreen is the announcements table; drafts publish with p
type postsScreen struct {
	svc    Services
	styles Styles

	table   table.Model
	posts   []api.Post
	page    int
	total   int
	loaded  bool
	errText string
	flash   string
}

func newPostsScreen(svc Services, styles Styles, height int) *postsScreen {
	cols := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Status", Width: 10},
		{Title: "Published", Width: 12},
		{Title: "Created", Width: 12},
	}

	return &postsScreen{
		svc:    svc,
		styles: styles,
		table:  newTable(cols, height-1),
		page:   1,
	}
}

func (s *postsScreen) Init() tea.Cmd {
	s.loaded = false
	return loadPostsCmd(s.svc, s.page)
}

func (s *postsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errText = pageError(msg.err)
			return s, nil
		}
		s.errText = ""
		s.total = msg.list.TotalCount
		s.posts = msg.list.Posts

		rows := make([]table.Row, 0, len(s.posts))
		for _, p := range s.posts {
			published := "—"
			if p.PublishedAt != nil {
				published = p.PublishedAt.Format("2006-01-02")
			}
			rows = append(rows, table.Row{
				p.Title, p.Status, published, p.CreatedAt.Format("2006-01-02"),
			})
		}
		s.table.SetRows(rows)
		return s, nil

	case postPublishedMsg:
		if msg.err != nil {
			s.flash = pageError(msg.err)
			return s, nil
		}
		s.flash = "Published " + msg.post.Title + "."
		return s, loadPostsCmd(s.svc, s.page)

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			if p := s.selectedPost(); p != nil && p.Status == api.PostStatusDraft {
				return s, publishPostCmd(s.svc, p.ID)
			}
			return s, nil
		case "left":
			if s.page > 1 {
				s.page--
				return s, s.Init()
			}
			return s, nil
		case "right":
			if s.page*listPageSize < s.total {
				s.page++
				return s, s.Init()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *postsScreen) selectedPost() *api.Post {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.posts) {
		return nil
	}
	return &s.posts[i]
}

func (s *postsScreen) View() string {
	if !s.loaded {
		return s.styles.Muted.Render("Loading posts...")
	}
	if s.errText != "" {
		return s.styles.Error.Render(s.errText)
	}

	var b strings.Builder
	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(pageLine(s.styles, s.page, s.total))
	b.WriteString("\n")
	if s.flash != "" {
		b.WriteString(s.styles.Success.Render(s.flash))
		b.WriteString("\n")
	}
	b.WriteString(s.styles.Muted.Render("p publish selected draft"))
	b.WriteString("\n")
	return b.String()
}

func (s *postsScreen) capturing() bool {
	return false
}

func loadPostsCmd(svc Services, page int) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		list, err := svc.Client.ListPosts(context.Background(), inst, page, listPageSize)
		return postsLoadedMsg{list: list, err: err}
	}
}

func publishPostCmd(svc Services, postID string) tea.Cmd {
	return func() tea.Msg {
		inst := svc.Session.State().InstitutionID
		post, err := svc.Client.PublishPost(context.Background(), inst, postID)
		return postPublishedMsg{post: post, err: err}
	}
}
