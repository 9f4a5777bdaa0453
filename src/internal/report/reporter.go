// Package report renders a comparison report for humans and machines.
package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/compare"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

// Reporter logs a report as a readable narrative: counter drift at INFO,
// anything that suggests an edited ruleset at WARN.
type Reporter struct {
	separator string
	before    *fasttemplate.Template
	after     *fasttemplate.Template
	added     *fasttemplate.Template
	removed   *fasttemplate.Template
}

// NewReporter compiles the line formats of cfg.
func NewReporter(cfg config.ReportConfig) (*Reporter, error) {
	r := &Reporter{separator: cfg.Separator}

	formats := []struct {
		dst    **fasttemplate.Template
		format string
	}{
		{&r.before, cfg.BeforeFormat},
		{&r.after, cfg.AfterFormat},
		{&r.added, cfg.NewFormat},
		{&r.removed, cfg.RemovedFormat},
	}
	for _, f := range formats {
		t, err := fasttemplate.NewTemplate(f.format, "{{", "}}")
		if err != nil {
			return nil, err
		}
		*f.dst = t
	}

	return r, nil
}

func (r *Reporter) render(t *fasttemplate.Template, chain, line string) string {
	return t.ExecuteString(map[string]interface{}{
		config.REPORT_TMPL_LINE:  line,
		config.REPORT_TMPL_CHAIN: chain,
	})
}

func (r *Reporter) section(chain string) {
	if r.separator != "" {
		log.Infof("%s", r.separator)
	}
	log.Infof("Comparing chain %s", chain)
}

// Log writes the report through the log package.
func (r *Reporter) Log(report *compare.Report) {
	if len(report.Chains) > 0 {
		log.Infof("Found chains: %s", strings.Join(report.Chains, ", "))
	}

	for _, anomaly := range report.Anomalies {
		if anomaly.Kind == compare.StructuralMismatch {
			log.Warnf("Chain names not the same - chains were added or removed!")
			break
		}
	}

	for _, verdict := range report.Changed {
		r.logVerdict(verdict)
	}

	for _, anomaly := range report.Anomalies {
		if anomaly.Kind == compare.ConsistencyAnomaly {
			log.Warnf("Chain %s: %s", anomaly.Chain, anomaly.Message)
		}
	}

	switch report.Outcome {
	case compare.NoChanges:
		log.Infof("RESULT: No changes at all.")
	case compare.PartialChanges:
		if r.separator != "" {
			log.Infof("%s", r.separator)
		}
		log.Infof("No changes in chains:")
		for _, name := range report.Unchanged {
			log.Infof(" * %s", name)
		}
		log.Infof("RESULT: Some chains have changes, some not.")
	case compare.AllChanged:
		log.Infof("RESULT: All chains have changed.")
	}
}

func (r *Reporter) logVerdict(v compare.ChainVerdict) {
	r.section(v.Chain)

	switch v.Kind {
	case compare.Removed:
		log.Warnf("No rules found in second check. They were removed before the second check.")
		for _, line := range v.Removed {
			log.Infof("%s", r.render(r.removed, v.Chain, line))
		}

	case compare.Added:
		log.Warnf("No rules found in first check. They were new in second check.")
		for _, line := range v.Added {
			log.Infof("%s", r.render(r.added, v.Chain, line))
		}

	case compare.Changed:
		if len(v.NearPairs) > 0 {
			log.Infof("Found nearly-equal pairs:")
			for _, pair := range v.NearPairs {
				log.Infof("%s", r.render(r.before, v.Chain, pair.Before))
				log.Infof("%s", r.render(r.after, v.Chain, pair.After))
			}
		}
		if len(v.UnmatchedBefore) > 0 || len(v.UnmatchedAfter) > 0 {
			log.Warnf("No pairs:")
			for _, line := range v.UnmatchedBefore {
				log.Warnf("%s", r.render(r.before, v.Chain, line))
			}
			for _, line := range v.UnmatchedAfter {
				log.Warnf("%s", r.render(r.after, v.Chain, line))
			}
		}
	}
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *compare.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
