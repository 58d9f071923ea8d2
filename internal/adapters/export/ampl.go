package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"consolidation-planner/internal/domain"
)

// WriteAMPL writes the per-route data block consumed by the external
// route-selection model: distance, load and piece count keyed by route ID.
// Values are the rounded report values.
func WriteAMPL(w io.Writer, costs []domain.RouteCost) error {
	bw := bufio.NewWriter(w)

	rows := make([]domain.CostRow, len(costs))
	for i, c := range costs {
		rows[i] = c.Row()
	}

	fmt.Fprint(bw, "data;\n\nparam route_dist :=\n")
	for _, r := range rows {
		fmt.Fprintf(bw, "%d %s\n", r.RouteID, formatFloat(r.DistanceKm))
	}
	fmt.Fprint(bw, ";\n\nparam route_load :=\n")
	for _, r := range rows {
		fmt.Fprintf(bw, "%d %s\n", r.RouteID, formatFloat(r.LoadTons))
	}
	fmt.Fprint(bw, ";\n\nparam route_piece :=\n")
	for _, r := range rows {
		fmt.Fprintf(bw, "%d %d\n", r.RouteID, r.PieceCount)
	}
	fmt.Fprint(bw, ";\n\nend;\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ampl data: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	// whole numbers keep one decimal so the column stays visibly real-valued
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
