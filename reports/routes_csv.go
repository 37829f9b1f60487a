// Package reports renders operational data into interchange formats:
// the route database as CSV and voyage reports as Excel workbooks.
package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/types"
)

// The route CSV carries four fixed columns followed by a flight-time,
// buffer and contingency column triple per aircraft type, e.g.
// CODE,FROM,TO,DISTANCE,PC12_FT,PC12_BUF,PC12_CT. Time cells are H:MM.
const (
	colCode     = "CODE"
	colFrom     = "FROM"
	colTo       = "TO"
	colDistance = "DISTANCE"

	suffixFlightTime  = "_FT"
	suffixBuffer      = "_BUF"
	suffixContingency = "_CT"
)

// RoutesToCSV renders the route list. The aircraft-type columns are the
// union of types present across all routes, sorted for a stable layout.
func RoutesToCSV(routes []types.Route) ([]byte, error) {
	typeSet := make(map[string]bool)
	for _, route := range routes {
		for _, rt := range route.Times {
			typeSet[rt.AircraftType] = true
		}
	}
	aircraftTypes := make([]string, 0, len(typeSet))
	for t := range typeSet {
		aircraftTypes = append(aircraftTypes, t)
	}
	sort.Strings(aircraftTypes)

	header := []string{colCode, colFrom, colTo, colDistance}
	for _, t := range aircraftTypes {
		header = append(header, t+suffixFlightTime, t+suffixBuffer, t+suffixContingency)
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, route := range routes {
		times := make(map[string]types.RouteTime, len(route.Times))
		for _, rt := range route.Times {
			times[rt.AircraftType] = rt
		}

		row := []string{
			route.Code,
			route.From,
			route.To,
			strconv.FormatFloat(route.DistanceNM, 'f', -1, 64),
		}
		for _, t := range aircraftTypes {
			rt, ok := times[t]
			if !ok {
				row = append(row, "", "", "")
				continue
			}
			row = append(row,
				calc.DecimalToHm(rt.FlightTime),
				calc.DecimalToHm(rt.Buffer),
				calc.DecimalToHm(rt.Contingency),
			)
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write route %s: %w", route.Code, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// RoutesFromCSV parses a route CSV back into records. Unknown columns
// are ignored; a type triple with all three cells empty produces no
// RouteTime for that type. Malformed time cells fall back to zero via
// the H:MM parser rather than failing the import.
func RoutesFromCSV(r io.Reader) ([]types.Route, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	header := records[0]
	fixed := map[string]int{}
	typeCols := map[string]map[string]int{} // aircraft type -> suffix -> column
	for i, name := range header {
		name = strings.TrimSpace(strings.ToUpper(name))
		switch name {
		case colCode, colFrom, colTo, colDistance:
			fixed[name] = i
			continue
		}
		for _, suffix := range []string{suffixFlightTime, suffixBuffer, suffixContingency} {
			if strings.HasSuffix(name, suffix) {
				aircraftType := strings.TrimSuffix(name, suffix)
				if typeCols[aircraftType] == nil {
					typeCols[aircraftType] = map[string]int{}
				}
				typeCols[aircraftType][suffix] = i
				break
			}
		}
	}
	for _, required := range []string{colCode, colFrom, colTo} {
		if _, ok := fixed[required]; !ok {
			return nil, fmt.Errorf("missing required column %s", required)
		}
	}

	aircraftTypes := make([]string, 0, len(typeCols))
	for t := range typeCols {
		aircraftTypes = append(aircraftTypes, t)
	}
	sort.Strings(aircraftTypes)

	cell := func(row []string, idx int, ok bool) string {
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	routes := make([]types.Route, 0, len(records)-1)
	for _, row := range records[1:] {
		code := cell(row, fixed[colCode], true)
		if code == "" {
			continue
		}
		route := types.Route{
			Code: code,
			From: cell(row, fixed[colFrom], true),
			To:   cell(row, fixed[colTo], true),
		}
		if idx, ok := fixed[colDistance]; ok {
			if v, err := strconv.ParseFloat(cell(row, idx, true), 64); err == nil {
				route.DistanceNM = v
			}
		}

		for _, t := range aircraftTypes {
			cols := typeCols[t]
			ftIdx, ftOK := cols[suffixFlightTime]
			bufIdx, bufOK := cols[suffixBuffer]
			ctIdx, ctOK := cols[suffixContingency]
			ft := cell(row, ftIdx, ftOK)
			buffer := cell(row, bufIdx, bufOK)
			ct := cell(row, ctIdx, ctOK)
			if ft == "" && buffer == "" && ct == "" {
				continue
			}
			route.Times = append(route.Times, types.RouteTime{
				AircraftType: t,
				FlightTime:   calc.HmToDecimal(ft),
				Buffer:       calc.HmToDecimal(buffer),
				Contingency:  calc.HmToDecimal(ct),
			})
		}
		routes = append(routes, route)
	}

	return routes, nil
}
