package analysis

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func newTextTable(w io.Writer, header ...string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)

	return tw
}

// WriteText renders the report as plain text.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Complexity analysis of suite %s (%s by %s)\n\n", r.Suite, r.ValueName, r.IndexName)

	r.writePower(bw)
	r.writeRatio(bw)
	r.writeConstants(bw)
	if len(r.Ranking) > 0 {
		r.writeRanking(bw)
	}

	return bw.Flush()
}

func (r *Report) writePower(w io.Writer) {
	fmt.Fprintln(w, "Power test: log2(T) = slope * log2(n) + intercept")

	tw := newTextTable(w, "Algorithm", "Points", "Slope", "Intercept", "R²", "Expected", "Deviation")
	for _, p := range r.Power {
		if p.Err != nil {
			tw.Append([]string{p.Algorithm, strconv.Itoa(p.Points), "error: " + p.Err.Error(), "", "", "", ""})
			continue
		}

		expected, deviation := "n/a", "n/a"
		if p.HasTheoretical {
			expected = num(p.Theoretical)
			deviation = strconv.FormatFloat(p.Deviation, 'f', 4, 64)
		}
		tw.Append([]string{
			p.Algorithm,
			strconv.Itoa(p.Points),
			strconv.FormatFloat(p.Fit.Slope, 'f', 4, 64),
			num(p.Fit.Intercept),
			strconv.FormatFloat(p.Fit.RSquared, 'f', 4, 64),
			expected,
			deviation,
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func (r *Report) writeRatio(w io.Writer) {
	fmt.Fprintln(w, "Ratio test: T / h(n)")

	for _, rr := range r.Ratio {
		if rr.Err != nil {
			fmt.Fprintf(w, "%s: error: %v\n\n", rr.Algorithm, rr.Err)
			continue
		}

		fmt.Fprintf(w, "%s, h(n) = %s", rr.Algorithm, rr.Model)
		if cv, ok := r.Stability[rr.Algorithm]; ok {
			fmt.Fprintf(w, ", coefficient of variation over last %d: %s", r.Tail, num(cv))
		}
		fmt.Fprintln(w)

		tw := newTextTable(w, r.IndexName, "n", "T", "h(n)", "T/h(n)")
		for _, p := range rr.Points {
			tw.Append([]string{strconv.Itoa(p.Size), num(p.ProblemSize), num(p.Time), num(p.Growth), num(p.Ratio)})
		}
		tw.Render()
		fmt.Fprintln(w)
	}
}

func (r *Report) writeConstants(w io.Writer) {
	fmt.Fprintln(w, "Constants test: T = c * h(n) + b")

	tw := newTextTable(w, "Algorithm", "h(n)", "c", "b", "R²", "RMSE")
	for _, c := range r.Constants {
		if c.Err != nil {
			tw.Append([]string{c.Algorithm, "", "error: " + c.Err.Error(), "", "", ""})
			continue
		}
		tw.Append([]string{
			c.Algorithm,
			c.Model.String(),
			num(c.Constant),
			num(c.Overhead),
			strconv.FormatFloat(c.Fit.RSquared, 'f', 4, 64),
			num(c.Fit.RMSE),
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func (r *Report) writeRanking(w io.Writer) {
	fmt.Fprintln(w, "Best-fit ranking by R²")

	tw := newTextTable(w, "Algorithm", "Best", "R²", "Formula", "Runner-up")
	for _, rr := range r.Ranking {
		if rr.Err != nil {
			tw.Append([]string{rr.Algorithm, "error: " + rr.Err.Error(), "", "", ""})
			continue
		}

		best := rr.Result.BestFit
		runnerUp := ""
		if len(rr.Result.AllModels) > 1 {
			second := rr.Result.AllModels[1]
			runnerUp = fmt.Sprintf("%s (%.4f)", second.Type, second.RSquared)
		}
		tw.Append([]string{
			rr.Algorithm,
			best.Type.String(),
			strconv.FormatFloat(best.RSquared, 'f', 4, 64),
			best.Formula,
			runnerUp,
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}
