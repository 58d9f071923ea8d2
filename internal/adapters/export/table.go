package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"consolidation-planner/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// WriteRoutesTable prints the generated routes, one row per route.
func WriteRoutesTable(w io.Writer, routes []domain.Route) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "route_id\troute_distance_km\tload_tons\tnum_customers\tvisit_order\t")
	for _, r := range routes {
		row := r.Row()
		fmt.Fprintf(tw, "%d\t%.2f\t%.3f\t%d\t%s\t\n",
			row.RouteID, row.DistanceKm, row.LoadTons, row.CustomerCount, joinInts(row.VisitOrder))
	}
	return tw.Flush()
}

// WriteCostsTable prints the cost breakdown of each route in input order.
func WriteCostsTable(w io.Writer, costs []domain.RouteCost) error {
	tw := newTable(w)
	writeCostRows(tw, costs)
	return tw.Flush()
}

// WriteSelectionTable prints the selected routes' cost rows followed by the total cost.
func WriteSelectionTable(w io.Writer, sel domain.Selection) error {
	tw := newTable(w)
	writeCostRows(tw, sel.Costs)
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Best total cost: %.2f\n", sel.TotalCost)
	return err
}

func writeCostRows(tw *tabwriter.Writer, costs []domain.RouteCost) {
	fmt.Fprintln(tw, "route_id\tdist\tload\ttrips\tfuel_L\tfuel_cost\tfixed_cost\tpiece_count\tpiece_cost\tlocal_cost\tCO2_kg\t")
	for _, c := range costs {
		row := c.Row()
		fmt.Fprintf(tw, "%d\t%.2f\t%.3f\t%d\t%.3f\t%.2f\t%.2f\t%d\t%.2f\t%.2f\t%.3f\t\n",
			row.RouteID, row.DistanceKm, row.LoadTons, row.Trips, row.FuelLiters, row.FuelCost,
			row.FixedCost, row.PieceCount, row.PieceCost, row.LocalCost, row.EmissionsKg)
	}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
