// Package display renders pipeline results for humans. Machine codes stay
// in JSON fields and map keys; words and tables are for CLI output. Row
// order always comes from the total-ordering contract, never from worker
// completion order.
package display

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"planscore/internal/aggregate"
	"planscore/internal/rubric"
	"planscore/internal/score"
	"planscore/internal/verify"
)

// Summary renders the macro verdict, the cluster table and the ranked area
// table for one pipeline result.
func Summary(res *aggregate.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Final score: %.3f / 3.0 (%.1f%%) — %s\n",
		res.Macro.Score, res.Macro.ScoreNormalized*100, res.Macro.QualityLevel)
	fmt.Fprintf(&b, "Cross-cutting coherence: %.3f   Strategic alignment: %.3f\n\n",
		res.Macro.CrossCuttingCoherence, res.Macro.StrategicAlignment)

	b.WriteString(clusterTable(res.Clusters))
	b.WriteString("\n")
	b.WriteString(areaTable(res.Areas))

	if len(res.Macro.SystemicGaps) > 0 {
		b.WriteString("\n")
		b.WriteString(gapTable(res.Macro.SystemicGaps))
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%d warning(s):\n", len(res.Warnings))
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	fmt.Fprintf(&b, "\nAudit: run %s, merkle root %s\n", res.Audit.RunID, res.Audit.MerkleRoot)
	return b.String()
}

func clusterTable(clusters []score.Cluster) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Cluster", "Score", "Scenario", "Penalty", "Coherence", "Weakest Area"})
	for _, c := range verify.OrderByKey(clusters, func(c score.Cluster) string { return c.ClusterID }) {
		t.AppendRow(table.Row{
			fmt.Sprintf("%s (%s)", rubric.ClusterName(c.ClusterID), c.ClusterID),
			fmt.Sprintf("%.3f", c.Score),
			string(c.DispersionScenario),
			fmt.Sprintf("%.3f", c.PenaltyApplied),
			fmt.Sprintf("%.3f", c.Coherence),
			rubric.AreaName(c.WeakestAreaID),
		})
	}
	return t.Render() + "\n"
}

func areaTable(areas []score.Area) string {
	ranked := verify.OrderByScore(areas,
		func(a score.Area) float64 { return a.Score },
		func(a score.Area) string { return verify.IdentityKey(a.AreaID) })

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "Policy Area", "Score", "Cluster"})
	for i, a := range ranked {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%s (%s)", rubric.AreaName(a.AreaID), a.AreaID),
			fmt.Sprintf("%.3f", a.Score),
			a.ClusterID,
		})
	}
	return t.Render() + "\n"
}

func gapTable(gaps []score.SystemicGap) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Systemic Gap", "Tier", "Score", "Shortfall", "Severity"})
	for _, g := range gaps {
		name := g.EntityID
		switch g.Tier {
		case "area":
			name = rubric.AreaName(g.EntityID)
		case "cluster":
			name = rubric.ClusterName(g.EntityID)
		}
		t.AppendRow(table.Row{
			name,
			g.Tier,
			fmt.Sprintf("%.3f", g.Score),
			fmt.Sprintf("%.3f", g.Shortfall),
			string(g.Severity),
		})
	}
	return t.Render() + "\n"
}
