package leaguepedia

import (
	"errors"
	"testing"
)

func TestDecodeScheduleRows(t *testing.T) {
	body := []byte(`{
		"cargoquery": [
			{"title": {
				"DateTime_UTC": "2025-04-20 15:00:00",
				"Team1": "G2 Esports",
				"Team2": "Team BDS",
				"Team1Score": "",
				"Team2Score": null,
				"BestOf": "5",
				"OverviewPage": "LEC/2025 Season/Spring Season"
			}},
			{"title": {
				"DateTime_UTC": "2025-04-20 18:00:00",
				"Team1": "Fnatic",
				"Team2": "Karmine Corp",
				"Team1Score": "1",
				"Team2Score": "0",
				"OverviewPage": "LEC/2025 Season/Spring Season"
			}}
		]
	}`)

	rows, err := decodeRows[scheduleRow](body)
	if err != nil {
		t.Fatalf("decodeRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].BestOf.or(0) != 5 {
		t.Errorf("BestOf string should parse, got %d", rows[0].BestOf.or(0))
	}
	if rows[0].Team1Score.ptr() != nil {
		t.Error("empty score string must read as absent")
	}
	if rows[0].Team2Score.ptr() != nil {
		t.Error("null score must read as absent")
	}
	if got := rows[1].Team1Score.or(-1); got != 1 {
		t.Errorf("Team1Score = %d, want 1", got)
	}
	if rows[1].BestOf.ptr() != nil {
		t.Error("missing BestOf must read as absent")
	}
}

func TestDecodeResultRows(t *testing.T) {
	body := []byte(`{
		"cargoquery": [
			{"title": {
				"DateTime_UTC": "2025-04-20 15:00:00",
				"Team1": "G2 Esports",
				"Team2": "Team BDS",
				"Winner": "G2 Esports",
				"Team1Score": 3,
				"Team2Score": 1,
				"Tournament": "LEC 2025 Spring"
			}}
		]
	}`)

	rows, err := decodeRows[resultRow](body)
	if err != nil {
		t.Fatalf("decodeRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Winner != "G2 Esports" {
		t.Errorf("Winner = %q", rows[0].Winner)
	}
	if rows[0].Team1Score.or(0) != 3 || rows[0].Team2Score.or(0) != 1 {
		t.Errorf("score = %d-%d", rows[0].Team1Score.or(0), rows[0].Team2Score.or(0))
	}
}

func TestDecodeCargoError(t *testing.T) {
	body := []byte(`{"error": {"code": "internal_api_error_MWException", "info": "boom"}}`)

	_, err := decodeRows[resultRow](body)
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != "internal_api_error_MWException" {
		t.Errorf("Code = %q", apiErr.Code)
	}
}

func TestDecodeEmptyResponse(t *testing.T) {
	rows, err := decodeRows[tournamentRow]([]byte(`{"cargoquery": []}`))
	if err != nil {
		t.Fatalf("decodeRows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestDecodeMalformedBody(t *testing.T) {
	if _, err := decodeRows[tournamentRow]([]byte(`<html>rate limited</html>`)); err == nil {
		t.Error("expected a decode error")
	}
}

func TestFlexIntGarbageValue(t *testing.T) {
	var f flexInt
	if err := f.UnmarshalJSON([]byte(`"TBD"`)); err != nil {
		t.Fatalf("garbage must be tolerated: %v", err)
	}
	if f.ptr() != nil {
		t.Error("garbage value must read as absent")
	}
}
