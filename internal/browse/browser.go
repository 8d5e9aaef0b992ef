package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/listresource"
)

// SectionLimit is how many articles a collapsed section shows.
const SectionLimit = 3

// DefaultPlaceholder is the image shown for articles without one.
const DefaultPlaceholder = "/placeholder.svg"

const (
	ShowMoreLabel = "Show More"
	ShowLessLabel = "Show Less"

	// NoArticlesMessage is shown when the whole list is empty.
	NoArticlesMessage = "No news articles available at the moment"
	// EmptyTabMessage is shown by a category tab with no articles.
	EmptyTabMessage = "No Articles Yet"
)

// Tab selects which sections the browser shows.
type Tab string

const (
	TabAll         Tab = "All"
	TabCrypto      Tab = "Crypto"
	TabStocks      Tab = "Stocks"
	TabCommodities Tab = "Commodities"
	TabMarkets     Tab = "Markets"
	TabTech        Tab = "Tech"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabCrypto, TabStocks, TabCommodities, TabMarkets, TabTech}

// ParseTab matches name against Tabs ignoring case. Unknown names select a
// tab for that raw category value.
func ParseTab(name string) Tab {
	for _, t := range Tabs {
		if strings.EqualFold(string(t), name) {
			return t
		}
	}
	return Tab(name)
}

// Card is one rendered article.
type Card struct {
	domain.ArticleSummary
	Image string
	Date  string
	Ago   string
}

// Section is one rendered category.
type Section struct {
	Category domain.Category
	Label    string
	Cards    []Card
	Total    int
	Expanded bool
	// Toggle is ShowMoreLabel, ShowLessLabel, or empty when the section
	// fits in SectionLimit.
	Toggle string
}

// View is what the browser renders for the current list, tab and
// expansion state.
type View struct {
	Tab      Tab
	Sections []Section
	// Message is set instead of sections for an empty list or tab.
	Message string
}

// Options configures rendering.
type Options struct {
	Placeholder string
	// Now is used for relative times; time.Now when nil.
	Now func() time.Time
}

// Render builds the view of items for tab. expanded holds the categories
// whose sections show every article.
func Render(items []domain.ArticleSummary, tab Tab, expanded map[domain.Category]bool, opts Options) View {
	view := View{Tab: tab}
	if len(items) == 0 {
		view.Message = NoArticlesMessage
		return view
	}

	groups := GroupByCategory(items)
	if tab == TabAll || tab == "" {
		view.Tab = TabAll
		for _, g := range groups {
			view.Sections = append(view.Sections, section(g, expanded[g.Category], opts))
		}
		return view
	}

	var matched Group
	for _, g := range groups {
		if g.Category.Matches(string(tab)) {
			if matched.Category == "" {
				matched.Category = g.Category
			}
			matched.Items = append(matched.Items, g.Items...)
		}
	}
	if len(matched.Items) == 0 {
		view.Message = EmptyTabMessage
		return view
	}
	sortNewestFirst(matched.Items)
	view.Sections = []Section{section(matched, expanded[matched.Category], opts)}
	return view
}

func section(g Group, expanded bool, opts Options) Section {
	s := Section{
		Category: g.Category,
		Label:    SectionLabel(g.Category),
		Total:    len(g.Items),
		Expanded: expanded,
	}

	visible := g.Items
	if len(g.Items) > SectionLimit {
		if expanded {
			s.Toggle = ShowLessLabel
		} else {
			s.Toggle = ShowMoreLabel
			visible = g.Items[:SectionLimit]
		}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	for _, item := range visible {
		s.Cards = append(s.Cards, Card{
			ArticleSummary: item,
			Image:          ImageFor(item, opts.Placeholder),
			Date:           item.CreatedAt.Format("January 2, 2006"),
			Ago:            humanize.RelTime(item.CreatedAt, now(), "ago", "from now"),
		})
	}
	return s
}

// ImageFor returns the article image or placeholder when it has none.
func ImageFor(item domain.ArticleSummary, placeholder string) string {
	if item.ImageURL != "" {
		return item.ImageURL
	}
	if placeholder == "" {
		return DefaultPlaceholder
	}
	return placeholder
}

// Browser is the public view: a list controller plus tab and expansion
// state. It never mutates articles.
type Browser struct {
	list *listresource.Controller[domain.ArticleSummary]
	opts Options

	mu       sync.Mutex
	tab      Tab
	expanded map[domain.Category]bool
}

// NewBrowser creates a Browser over fetch, showing TabAll.
func NewBrowser(fetch listresource.FetchFunc[domain.ArticleSummary], opts Options, listOpts ...listresource.Option[domain.ArticleSummary]) *Browser {
	return &Browser{
		list:     listresource.New(fetch, listOpts...),
		opts:     opts,
		tab:      TabAll,
		expanded: make(map[domain.Category]bool),
	}
}

// Load fetches the published list.
func (b *Browser) Load(ctx context.Context) error { return b.list.Load(ctx) }

// Retry re-fetches after a failure.
func (b *Browser) Retry(ctx context.Context) error { return b.list.Retry(ctx) }

// Close cancels any in-flight fetch.
func (b *Browser) Close() { b.list.Close() }

// Snapshot returns the list state.
func (b *Browser) Snapshot() listresource.Snapshot[domain.ArticleSummary] {
	return b.list.Snapshot()
}

// SelectTab switches the visible tab.
func (b *Browser) SelectTab(tab Tab) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tab = tab
}

// Toggle flips the expansion of category's section.
func (b *Browser) Toggle(category domain.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expanded[category] = !b.expanded[category]
}

// View renders the current state. It is only meaningful once the list is
// Populated or Empty.
func (b *Browser) View() View {
	snap := b.list.Snapshot()

	b.mu.Lock()
	tab := b.tab
	expanded := make(map[domain.Category]bool, len(b.expanded))
	for k, v := range b.expanded {
		expanded[k] = v
	}
	b.mu.Unlock()

	return Render(snap.Items, tab, expanded, b.opts)
}
