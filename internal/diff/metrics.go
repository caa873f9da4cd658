package diff

import (
	"regexp"
	"sync"

	"github.com/AndreyAkinshin/refguard/internal/numdiff"
)

// Metric names parsed from solver stdout.
const (
	MetricResultedMp   = "resulted_Mp"
	MetricResultedMm   = "resulted_Mm"
	MetricTotalADMMass = "total_ADM_mass"
)

// Metrics maps metric names to values.
type Metrics map[string]float64

type stdoutPatterns struct {
	resulted *regexp.Regexp
	adm      *regexp.Regexp
}

var patterns = sync.OnceValue(func() stdoutPatterns {
	return stdoutPatterns{
		resulted: regexp.MustCompile(`resulted Mp =\s*([-+0-9.eE]+)\s*and Mm =\s*([-+0-9.eE]+)`),
		adm:      regexp.MustCompile(`The total ADM mass is\s*([-+0-9.eE]+)`),
	}
})

// ParseStdoutMetrics extracts the puncture masses and the ADM mass from
// solver stdout. The two patterns are searched independently; a pattern
// that is absent, or whose capture does not parse, leaves its keys out.
func ParseStdoutMetrics(text string) Metrics {
	p := patterns()
	out := make(Metrics)

	if m := p.resulted.FindStringSubmatch(text); m != nil {
		mp, okP := numdiff.ParseFloat(m[1])
		mm, okM := numdiff.ParseFloat(m[2])
		if okP && okM {
			out[MetricResultedMp] = mp
			out[MetricResultedMm] = mm
		}
	}

	if m := p.adm.FindStringSubmatch(text); m != nil {
		if v, ok := numdiff.ParseFloat(m[1]); ok {
			out[MetricTotalADMMass] = v
		}
	}

	return out
}
