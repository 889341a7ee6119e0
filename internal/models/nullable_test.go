package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue string
	}{
		{
			name:      "field present with string value",
			json:      `{"notes": "hello"}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "hello",
		},
		{
			name:      "field present with null value",
			json:      `{"notes": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field present with empty string",
			json:      `{"notes": ""}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Notes NullableString `json:"notes"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Notes.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Notes.Set, tt.wantSet)
			}
			if result.Notes.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Notes.Valid, tt.wantValid)
			}
			if result.Notes.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", result.Notes.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableString_ToPtr(t *testing.T) {
	tests := []struct {
		name    string
		ns      NullableString
		wantNil bool
		wantVal string
	}{
		{
			name:    "valid string",
			ns:      NullableString{Value: "hello", Valid: true, Set: true},
			wantNil: false,
			wantVal: "hello",
		},
		{
			name:    "null value",
			ns:      NullableString{Valid: false, Set: true},
			wantNil: true,
		},
		{
			name:    "not set",
			ns:      NullableString{Valid: false, Set: false},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ptr := tt.ns.ToPtr()
			if tt.wantNil {
				if ptr != nil {
					t.Errorf("ToPtr() = %v, want nil", *ptr)
				}
			} else {
				if ptr == nil {
					t.Errorf("ToPtr() = nil, want %q", tt.wantVal)
				} else if *ptr != tt.wantVal {
					t.Errorf("ToPtr() = %q, want %q", *ptr, tt.wantVal)
				}
			}
		})
	}
}

func TestNullableTime_UnmarshalJSON(t *testing.T) {
	testTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	testTimeJSON := `"2024-01-15T10:30:00Z"`

	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantTime  time.Time
	}{
		{
			name:      "field present with time value",
			json:      `{"end_date": ` + testTimeJSON + `}`,
			wantSet:   true,
			wantValid: true,
			wantTime:  testTime,
		},
		{
			name:      "field present with null value",
			json:      `{"end_date": null}`,
			wantSet:   true,
			wantValid: false,
			wantTime:  time.Time{},
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantTime:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				EndDate NullableTime `json:"end_date"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.EndDate.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.EndDate.Set, tt.wantSet)
			}
			if result.EndDate.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.EndDate.Valid, tt.wantValid)
			}
			if !result.EndDate.Value.Equal(tt.wantTime) {
				t.Errorf("Value = %v, want %v", result.EndDate.Value, tt.wantTime)
			}
		})
	}
}

func TestNullableInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue int
	}{
		{
			name:      "field present with int value",
			json:      `{"sleep_quality": 7}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 7,
		},
		{
			name:      "field present with null value",
			json:      `{"sleep_quality": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				SleepQuality NullableInt `json:"sleep_quality"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.SleepQuality.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.SleepQuality.Set, tt.wantSet)
			}
			if result.SleepQuality.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.SleepQuality.Valid, tt.wantValid)
			}
			if result.SleepQuality.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", result.SleepQuality.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue float64
	}{
		{
			name:      "field present with float value",
			json:      `{"temperature": 21.5}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 21.5,
		},
		{
			name:      "field present with null value",
			json:      `{"temperature": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Temperature NullableFloat `json:"temperature"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.Temperature.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.Temperature.Set, tt.wantSet)
			}
			if result.Temperature.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Temperature.Valid, tt.wantValid)
			}
			if result.Temperature.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", result.Temperature.Value, tt.wantValue)
			}
		})
	}
}

func TestSaveContextRequest_WithNullableFields(t *testing.T) {
	// Clearing a field sends an explicit null
	json1 := `{"sleep_quality": null}`
	var req1 SaveContextRequest
	err := json.Unmarshal([]byte(json1), &req1)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if !req1.SleepQuality.Set {
		t.Error("Expected SleepQuality.Set to be true when field is present with null")
	}
	if req1.SleepQuality.Valid {
		t.Error("Expected SleepQuality.Valid to be false when value is null")
	}

	// Absent fields leave the stored value untouched
	json2 := `{"weather_condition": "sunny"}`
	var req2 SaveContextRequest
	err = json.Unmarshal([]byte(json2), &req2)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if req2.SleepQuality.Set {
		t.Error("Expected SleepQuality.Set to be false when field is absent")
	}
	if !req2.WeatherCondition.Set || req2.WeatherCondition.Value != "sunny" {
		t.Errorf("Expected WeatherCondition to be set to 'sunny', got %+v", req2.WeatherCondition)
	}

	// A real value sets both flags
	json3 := `{"sleep_quality": 8, "work_stress": 3}`
	var req3 SaveContextRequest
	err = json.Unmarshal([]byte(json3), &req3)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if !req3.SleepQuality.Set || !req3.SleepQuality.Valid {
		t.Error("Expected SleepQuality to be set and valid")
	}
	if req3.SleepQuality.Value != 8 {
		t.Errorf("Expected SleepQuality.Value to be 8, got %d", req3.SleepQuality.Value)
	}
	if req3.WorkStress.Value != 3 {
		t.Errorf("Expected WorkStress.Value to be 3, got %d", req3.WorkStress.Value)
	}
}
