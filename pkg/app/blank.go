package app

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// blank stands in for a view that could not be built.
type blank struct {
	core.IgnoreEvents
}

func (blank) Sizing() layout.Sizing {
	return layout.Sizing{Width: layout.Fill(), Height: layout.Fill()}
}

func (blank) Measure(*core.Tree, layout.Limits) graphics.Size { return graphics.Size{} }

func (blank) Arrange(_ *core.Tree, size graphics.Size) layout.Node { return layout.NewNode(size) }

func (blank) Draw(*core.Tree, *graphics.Recorder, layout.Node) {}
