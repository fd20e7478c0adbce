package app

import (
	"context"
	"fmt"

	"mideck/domain/deck"
	"mideck/domain/demo"
	"mideck/ports"
)

// DeckInfo is the title block shown on every page.
type DeckInfo struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Author   string `json:"author,omitempty"`
	Contact  string `json:"contact,omitempty"`
}

// PageView is everything the shell needs to draw one page.
type PageView struct {
	Deck       DeckInfo              `json:"deck"`
	Page       deck.PageDescriptor   `json:"page"`
	Navigation deck.Navigation       `json:"navigation"`
	Upper      deck.Controls         `json:"upper"`
	Lower      deck.Controls         `json:"lower"`
	Body       []byte                `json:"-"`
	Pages      []deck.PageDescriptor `json:"pages"`
	Demo       *DemoView             `json:"demo,omitempty"`
	EDF        *EDFView              `json:"edf,omitempty"`
	Accuracy   *AccuracyView         `json:"accuracy,omitempty"`
}

// SliderView is one slider of the interactive demo.
type SliderView struct {
	Param demo.Parameter `json:"param"`
	Label string         `json:"label"`
	Help  string         `json:"help,omitempty"`
	Value int            `json:"value"`
	Min   int            `json:"min"`
	Max   int            `json:"max"`
	Step  int            `json:"step"`
}

// DemoView is the slider state plus the conceptual result and its chart.
type DemoView struct {
	Inputs  demo.SimulationInputs `json:"inputs"`
	Result  demo.SimulationResult `json:"result"`
	Chart   demo.ChartSpec        `json:"chart"`
	Sliders []SliderView          `json:"sliders"`
}

// Option is one radio choice.
type Option struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// EDFView is the degrees-of-freedom comparison widget.
type EDFView struct {
	Scenario demo.EDFScenario `json:"scenario"`
	Options  []Option         `json:"options"`
	Subjects int              `json:"subjects"`
	Params   int              `json:"params"`
}

// AccuracyView is the MAE/MSE comparison widget.
type AccuracyView struct {
	Series  demo.AccuracySeries `json:"series"`
	Options []Option            `json:"options"`
}

var sliderText = map[demo.Parameter]struct{ label, help string }{
	demo.ParamSampleSize:      {"Conceptual Sample Size", ""},
	demo.ParamMissingPercent:  {"Conceptual Missing Data (%)", ""},
	demo.ParamNumImputations:  {"Number of Imputations (m)", "More imputations generally lead to more stable estimates and more accurate standard errors."},
	demo.ParamModelComplexity: {"Conceptual Model Complexity", "Represents the number of parameters in the analysis model. Higher complexity can affect DF."},
}

// PresentationService assembles page views from the catalog, the content
// source and the simulation service.
type PresentationService struct {
	info       DeckInfo
	catalog    *deck.Catalog
	content    ports.ContentSource
	simulation *SimulationService
}

// NewPresentationService creates a presentation service
func NewPresentationService(manifest *deck.Manifest, catalog *deck.Catalog, content ports.ContentSource, simulation *SimulationService) *PresentationService {
	info := DeckInfo{}
	if manifest != nil {
		info = DeckInfo{
			Title:    manifest.Title,
			Subtitle: manifest.Subtitle,
			Author:   manifest.Author,
			Contact:  manifest.Contact,
		}
	}
	return &PresentationService{
		info:       info,
		catalog:    catalog,
		content:    content,
		simulation: simulation,
	}
}

// Catalog returns the page catalog.
func (s *PresentationService) Catalog() *deck.Catalog { return s.catalog }

// Info returns the deck title block.
func (s *PresentationService) Info() DeckInfo { return s.info }

// Simulation returns the simulation service behind the demo widget.
func (s *PresentationService) Simulation() *SimulationService { return s.simulation }

// Navigate resolves the neighbours of a page.
func (s *PresentationService) Navigate(identifier string) (deck.Navigation, error) {
	return deck.Resolve(s.catalog, identifier)
}

// PageState is the widget state carried in a page request. Zero values mean
// the defaults.
type PageState struct {
	Inputs *demo.SimulationInputs
	EDF    demo.EDFSetting
	Metric demo.AccuracyMetric
}

func (st PageState) withDefaults() PageState {
	if st.Inputs == nil {
		in := demo.DefaultInputs()
		st.Inputs = &in
	}
	if st.EDF == "" {
		st.EDF = demo.DefaultEDFSetting
	}
	if st.Metric == "" {
		st.Metric = demo.MetricMAE
	}
	return st
}

// Page builds the view for a page. Widget state that does not apply to the
// page kind is ignored.
func (s *PresentationService) Page(ctx context.Context, identifier string, state PageState) (*PageView, error) {
	nav, err := deck.Resolve(s.catalog, identifier)
	if err != nil {
		return nil, err
	}

	body, err := s.content.Render(ctx, nav.Current)
	if err != nil {
		return nil, fmt.Errorf("render page %s: %w", identifier, err)
	}

	view := &PageView{
		Deck:       s.info,
		Page:       nav.Current,
		Navigation: nav,
		Upper:      nav.Controls(deck.PlacementUpper),
		Lower:      nav.Controls(deck.PlacementLower),
		Body:       body,
		Pages:      s.catalog.Pages(),
	}

	state = state.withDefaults()
	switch nav.Current.Kind {
	case deck.KindDemo:
		if view.Demo, err = s.Demo(ctx, *state.Inputs); err != nil {
			return nil, err
		}
	case deck.KindEDF:
		if view.EDF, err = s.EDF(state.EDF); err != nil {
			return nil, err
		}
		if view.Accuracy, err = s.Accuracy(ctx, state.Metric); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// Demo runs the simulation for the given slider positions.
func (s *PresentationService) Demo(ctx context.Context, in demo.SimulationInputs) (*DemoView, error) {
	result, err := s.simulation.Simulate(ctx, in)
	if err != nil {
		return nil, err
	}
	return &DemoView{
		Inputs:  in,
		Result:  result,
		Chart:   demo.NewChartSpec(result),
		Sliders: sliders(in),
	}, nil
}

// EDF builds the comparison widget for a setting.
func (s *PresentationService) EDF(setting demo.EDFSetting) (*EDFView, error) {
	scenario, err := demo.ScenarioFor(setting)
	if err != nil {
		return nil, err
	}

	view := &EDFView{
		Scenario: scenario,
		Subjects: demo.DummySubjects,
		Params:   demo.DummyParameters,
	}
	for _, opt := range demo.EDFSettings() {
		sc, err := demo.ScenarioFor(opt)
		if err != nil {
			return nil, err
		}
		view.Options = append(view.Options, Option{Value: string(opt), Label: sc.Label, Checked: opt == setting})
	}
	return view, nil
}

// Accuracy builds the error-curve widget for a metric.
func (s *PresentationService) Accuracy(ctx context.Context, m demo.AccuracyMetric) (*AccuracyView, error) {
	series, err := s.simulation.Accuracy(ctx, m)
	if err != nil {
		return nil, err
	}

	view := &AccuracyView{Series: series}
	for _, opt := range demo.AccuracyMetrics() {
		view.Options = append(view.Options, Option{Value: string(opt), Label: opt.Label(), Checked: opt == m})
	}
	return view, nil
}

func sliders(in demo.SimulationInputs) []SliderView {
	values := map[demo.Parameter]int{
		demo.ParamSampleSize:      in.SampleSize,
		demo.ParamMissingPercent:  in.MissingPercent,
		demo.ParamNumImputations:  in.NumImputations,
		demo.ParamModelComplexity: in.ModelComplexity,
	}

	out := make([]SliderView, 0, len(values))
	for _, p := range demo.Parameters() {
		r, err := p.Range()
		if err != nil {
			continue
		}
		text := sliderText[p]
		out = append(out, SliderView{
			Param: p,
			Label: text.label,
			Help:  text.help,
			Value: values[p],
			Min:   r.Min,
			Max:   r.Max,
			Step:  r.Step,
		})
	}
	return out
}
