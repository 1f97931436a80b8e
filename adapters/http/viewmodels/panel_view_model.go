package viewmodels

import (
	"net/url"
	"strings"

	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/cloudcopper/levelpanel/lib/types"
)

// Control is one level selector of the panel
type Control struct {
	Name    string
	Tag     models.Tag
	Kind    vo.ControlKind
	Level   vo.Level
	Visible bool
}

func (c *Control) IsAggregate() bool {
	return c.Kind != vo.ControlTag
}

type Panel struct {
	Persist    bool
	Hidden     bool
	Filter     string
	StoreKey   string
	RecordSize types.Size
	Controls   []*Control
	Visible    int
}

// NewPanel is pure function of the snapshot.
// The ALL and GLOBAL controls come first,
// the tag controls follow in snapshot order.
// The filter only hides tag controls not containing it.
func NewPanel(snapshot models.Snapshot, filter string, hidden bool) *Panel {
	p := &Panel{
		Persist: snapshot.Persist,
		Hidden:  hidden,
		Filter:  filter,
		Controls: []*Control{
			{Name: vo.ControlAll.String(), Kind: vo.ControlAll, Level: snapshot.All, Visible: true},
			{Name: vo.ControlGlobal.String(), Kind: vo.ControlGlobal, Level: snapshot.Global, Visible: true},
		},
	}
	for _, row := range snapshot.Rows {
		visible := filter == "" || strings.Contains(row.Tag, filter)
		if visible {
			p.Visible++
		}
		p.Controls = append(p.Controls, &Control{
			Name:    row.Tag,
			Tag:     row.Tag,
			Kind:    vo.ControlTag,
			Level:   row.Level,
			Visible: visible,
		})
	}
	return p
}

// Query returns the query string keeping the view state,
// or empty string for the default view
func (p *Panel) Query() string {
	return ViewQuery(p.Filter, p.Hidden)
}

// ToggleQuery is Query with the hidden flag flipped
func (p *Panel) ToggleQuery() string {
	return ViewQuery(p.Filter, !p.Hidden)
}

// ViewQuery returns query string of the panel view state
func ViewQuery(filter string, hidden bool) string {
	v := url.Values{}
	if filter != "" {
		v.Set("q", filter)
	}
	if hidden {
		v.Set("hidden", "1")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// State is JSON view of the panel
type State struct {
	Persist bool       `json:"persist"`
	All     int        `json:"all"`
	Global  int        `json:"global"`
	Tags    []StateTag `json:"tags"`
}

type StateTag struct {
	Tag   models.Tag `json:"tag"`
	Level int        `json:"level"`
	Name  string     `json:"name"`
}

func NewState(snapshot models.Snapshot) *State {
	s := &State{
		Persist: snapshot.Persist,
		All:     snapshot.All.Int(),
		Global:  snapshot.Global.Int(),
		Tags:    []StateTag{},
	}
	for _, row := range snapshot.Rows {
		s.Tags = append(s.Tags, StateTag{Tag: row.Tag, Level: row.Level.Int(), Name: row.Level.String()})
	}
	return s
}
