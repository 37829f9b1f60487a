package reports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/skybridgeair/flightops/types"
)

func sampleRoutes() []types.Route {
	return []types.Route{
		{
			Code: "YBR-YTH", From: "CYBR", To: "CYTH", DistanceNM: 245,
			Times: []types.RouteTime{
				{AircraftType: "PC12", FlightTime: 1.5, Buffer: 0.25, Contingency: 0.25},
				{AircraftType: "C208", FlightTime: 2.0, Buffer: 0.5, Contingency: 0.25},
			},
		},
		{
			Code: "YTH-XLB", From: "CYTH", To: "CZWH", DistanceNM: 120,
			Times: []types.RouteTime{
				{AircraftType: "C208", FlightTime: 1.0, Buffer: 0.25},
			},
		},
	}
}

func TestRoutesToCSVHeader(t *testing.T) {
	data, err := RoutesToCSV(sampleRoutes())
	if err != nil {
		t.Fatalf("RoutesToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}

	wantHeader := "CODE,FROM,TO,DISTANCE,C208_FT,C208_BUF,C208_CT,PC12_FT,PC12_BUF,PC12_CT"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if !strings.Contains(lines[1], "1:30") {
		t.Errorf("expected H:MM time cells in %q", lines[1])
	}
}

func TestRoutesCSVRoundTrip(t *testing.T) {
	original := sampleRoutes()
	data, err := RoutesToCSV(original)
	if err != nil {
		t.Fatalf("RoutesToCSV failed: %v", err)
	}

	parsed, err := RoutesFromCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("RoutesFromCSV failed: %v", err)
	}
	if len(parsed) != len(original) {
		t.Fatalf("expected %d routes, got %d", len(original), len(parsed))
	}

	first := parsed[0]
	if first.Code != "YBR-YTH" || first.From != "CYBR" || first.To != "CYTH" {
		t.Errorf("fixed columns round-tripped wrong: %+v", first)
	}
	if first.DistanceNM != 245 {
		t.Errorf("distance = %v, want 245", first.DistanceNM)
	}
	if len(first.Times) != 2 {
		t.Fatalf("expected 2 aircraft types, got %d", len(first.Times))
	}
	for _, rt := range first.Times {
		if rt.AircraftType == "PC12" && rt.FlightTime != 1.5 {
			t.Errorf("PC12 flight time = %v, want 1.5", rt.FlightTime)
		}
	}

	// Route without PC12 figures must not grow a PC12 entry.
	second := parsed[1]
	if len(second.Times) != 1 || second.Times[0].AircraftType != "C208" {
		t.Errorf("expected only C208 times on second route, got %+v", second.Times)
	}
}

func TestRoutesFromCSVMalformed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    int
	}{
		{"missing required column", "CODE,FROM,DISTANCE\nA,B,1\n", true, 0},
		{"blank code rows skipped", "CODE,FROM,TO\nAB,X,Y\n,X,Y\n", false, 1},
		{"bad time cell becomes zero", "CODE,FROM,TO,PC12_FT,PC12_BUF,PC12_CT\nAB,X,Y,oops,0:15,\n", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, err := RoutesFromCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(routes) != tt.want {
				t.Errorf("got %d routes, want %d", len(routes), tt.want)
			}
		})
	}
}

func TestRoutesFromCSVBadTimeCell(t *testing.T) {
	input := "CODE,FROM,TO,PC12_FT,PC12_BUF,PC12_CT\nAB,X,Y,oops,0:15,\n"
	routes, err := RoutesFromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 1 || len(routes[0].Times) != 1 {
		t.Fatalf("unexpected parse result: %+v", routes)
	}
	rt := routes[0].Times[0]
	if rt.FlightTime != 0 {
		t.Errorf("unparseable flight time should be 0, got %v", rt.FlightTime)
	}
	if rt.Buffer != 0.25 {
		t.Errorf("buffer = %v, want 0.25", rt.Buffer)
	}
}
