package demo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"mideck/domain/core"
)

// EDFSetting is the SAS PROC MIANALYZE complete-data degrees of freedom choice.
type EDFSetting string

const (
	EDFDefault   EDFSetting = "default"
	EDFCorrected EDFSetting = "corrected"
)

// Dummy study used on the comparative analysis page.
const (
	DummySubjects   = 500
	DummyParameters = 7
)

// EDFSettings lists the radio options in display order.
func EDFSettings() []EDFSetting {
	return []EDFSetting{EDFDefault, EDFCorrected}
}

// DefaultEDFSetting is the option selected on first load.
const DefaultEDFSetting = EDFCorrected

// EDFScenario is the fixed conceptual readout for one setting.
type EDFScenario struct {
	Setting   EDFSetting `json:"setting"`
	Label     string     `json:"label"`
	DF        string     `json:"df"`
	PValue    string     `json:"p_value"`
	PNote     string     `json:"p_note"`
	Interval  string     `json:"interval"`
	CINote    string     `json:"ci_note"`
	Message   string     `json:"message"`
	Tone      string     `json:"tone"`
	CriticalT float64    `json:"critical_t"`
}

// CompleteDataDF is subjects minus estimated model parameters.
func CompleteDataDF(subjects, parameters int) (int, error) {
	if subjects <= 0 || parameters < 0 || parameters >= subjects {
		return 0, fmt.Errorf("%w: subjects=%d parameters=%d", core.ErrInvalidInput, subjects, parameters)
	}
	return subjects - parameters, nil
}

// CriticalValue is the two-sided 95% critical value for df degrees of freedom.
// Infinite df uses the standard normal.
func CriticalValue(df float64) float64 {
	if math.IsInf(df, 1) {
		return distuv.UnitNormal.Quantile(0.975)
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(0.975)
}

// ScenarioFor returns the conceptual readout for a setting.
func ScenarioFor(setting EDFSetting) (EDFScenario, error) {
	switch setting {
	case EDFDefault:
		return EDFScenario{
			Setting:   EDFDefault,
			Label:     "Default (Infinite)",
			DF:        "Inf",
			PValue:    "0.01",
			PNote:     "Potentially misleading",
			Interval:  "[0.5, 3.5]",
			CINote:    "Wider, less precise",
			Message:   "With default infinite DF in SAS, confidence intervals can be wider and p-values less precise if the effective degrees of freedom are much smaller.",
			Tone:      "warning",
			CriticalT: CriticalValue(math.Inf(1)),
		}, nil
	case EDFCorrected:
		df, err := CompleteDataDF(DummySubjects, DummyParameters)
		if err != nil {
			return EDFScenario{}, err
		}
		return EDFScenario{
			Setting:   EDFCorrected,
			Label:     fmt.Sprintf("Corrected (EDF=%d)", df),
			DF:        fmt.Sprintf("%d", df),
			PValue:    "0.04",
			PNote:     "Accurate",
			Interval:  "[0.1, 2.8]",
			CINote:    "More precise",
			Message:   "By correctly specifying EDF, R and SAS yield fully consistent results for ANCOVA with Rubin's Rule pooling.",
			Tone:      "success",
			CriticalT: CriticalValue(float64(df)),
		}, nil
	}
	return EDFScenario{}, fmt.Errorf("%w: edf setting %q", core.ErrInvalidSetting, setting)
}
