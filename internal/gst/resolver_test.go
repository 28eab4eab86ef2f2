package gst

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name    string
		product string
		params  map[string]string
		want    int64
	}{
		{
			name:    "small petrol car at both limits",
			product: "Small Cars",
			params: map[string]string{
				ParamEngineCapacity: "1200",
				ParamLength:         "4000",
				ParamFuelType:       "Petrol",
			},
			want: 18,
		},
		{
			name:    "petrol car one cc over the limit",
			product: "Small Cars",
			params: map[string]string{
				ParamEngineCapacity: "1201",
				ParamLength:         "4000",
				ParamFuelType:       "Petrol",
			},
			want: 40,
		},
		{
			name:    "diesel car within the diesel limit",
			product: "Small Cars",
			params: map[string]string{
				ParamEngineCapacity: "1500",
				ParamLength:         "3990",
				ParamFuelType:       "Diesel",
			},
			want: 18,
		},
		{
			name:    "diesel car too long",
			product: "Small Cars",
			params: map[string]string{
				ParamEngineCapacity: "1400",
				ParamLength:         "4001",
				ParamFuelType:       "Diesel",
			},
			want: 40,
		},
		{
			name:    "CNG car qualifies like petrol",
			product: "Small Cars",
			params: map[string]string{
				ParamEngineCapacity: "1100",
				ParamLength:         "3800",
				ParamFuelType:       "CNG",
			},
			want: 18,
		},
		{
			name:    "sedan under every threshold",
			product: "Mid-size, Large Cars & SUVs",
			params: map[string]string{
				ParamEngineCapacity: "1400",
				ParamLength:         "3900",
				ParamVehicleType:    "Sedan",
			},
			want: 18,
		},
		{
			name:    "sedan with a large engine",
			product: "Mid-size, Large Cars & SUVs",
			params: map[string]string{
				ParamEngineCapacity: "1501",
				ParamLength:         "3900",
				ParamVehicleType:    "Sedan",
			},
			want: 40,
		},
		{
			name:    "SUV at the clearance threshold",
			product: "Mid-size, Large Cars & SUVs",
			params: map[string]string{
				ParamEngineCapacity:  "1400",
				ParamLength:          "3900",
				ParamGroundClearance: "170",
				ParamVehicleType:     "SUV",
			},
			want: 40,
		},
		{
			name:    "SUV below the clearance threshold",
			product: "Mid-size, Large Cars & SUVs",
			params: map[string]string{
				ParamEngineCapacity:  "1400",
				ParamLength:          "3900",
				ParamGroundClearance: "169",
				ParamVehicleType:     "SUV",
			},
			want: 18,
		},
		{
			name:    "tractor under 1800cc",
			product: "Tractors",
			params:  map[string]string{ParamEngineCapacity: "1800"},
			want:    5,
		},
		{
			name:    "road tractor above 1800cc",
			product: "Road Tractors for semi-trailers",
			params:  map[string]string{ParamEngineCapacity: "1801"},
			want:    18,
		},
		{
			name:    "motorcycle at the 350cc boundary",
			product: "Motorcycles (≤350cc)",
			params:  map[string]string{ParamEngineCapacity: "350"},
			want:    18,
		},
		{
			name:    "motorcycle just above 350cc",
			product: "Motorcycles (>350cc)",
			params:  map[string]string{ParamEngineCapacity: "351"},
			want:    40,
		},
		{
			name:    "unparseable engine capacity compares as zero",
			product: "Motorcycles (>350cc)",
			params:  map[string]string{ParamEngineCapacity: "abc"},
			want:    18,
		},
		{
			name:    "missing parameters compare as zero",
			product: "Small Cars",
			params:  map[string]string{ParamFuelType: "Petrol"},
			want:    18,
		},
		{
			name:    "flat-rate product ignores parameters",
			product: "Three-Wheelers",
			params:  map[string]string{ParamEngineCapacity: "9000"},
			want:    18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := FindProduct(tt.product)
			if !ok {
				t.Fatalf("product %q not in catalog", tt.product)
			}
			got := EffectiveRate(p, tt.params)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("EffectiveRate() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	p, ok := FindProduct("Air Conditioners")
	if !ok {
		t.Fatal("product not in catalog")
	}

	res, err := Calculate(p, nil, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got := res.TaxAmount.StringFixed(2); got != "180.00" {
		t.Errorf("TaxAmount = %s, want 180.00", got)
	}
	if got := res.TotalAmount.StringFixed(2); got != "1180.00" {
		t.Errorf("TotalAmount = %s, want 1180.00", got)
	}
}

func TestCalculateNegativeAmount(t *testing.T) {
	p, _ := FindProduct("Air Conditioners")
	if _, err := Calculate(p, nil, decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Calculate() error = %v, want ErrInvalidAmount", err)
	}
}

func TestCalculateByName(t *testing.T) {
	res, err := CalculateByName("UHT Milk", nil, "250.50")
	if err != nil {
		t.Fatalf("CalculateByName() error = %v", err)
	}
	if !res.RatePercent.IsZero() {
		t.Errorf("RatePercent = %s, want 0", res.RatePercent)
	}
	if got := res.TotalAmount.StringFixed(2); got != "250.50" {
		t.Errorf("TotalAmount = %s, want 250.50", got)
	}

	if _, err := CalculateByName("Flying Carpets", nil, "100"); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("CalculateByName() error = %v, want ErrUnknownProduct", err)
	}
	if _, err := CalculateByName("UHT Milk", nil, "ten"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("CalculateByName() error = %v, want ErrInvalidAmount", err)
	}
}

func TestCatalogTabs(t *testing.T) {
	if len(Goods()) == 0 || len(Services()) == 0 {
		t.Fatal("catalog tables must not be empty")
	}
	if got := Catalog("services"); len(got) != len(Services()) {
		t.Errorf("Catalog(services) returned %d categories, want %d", len(got), len(Services()))
	}
	if got := Catalog("nonsense"); len(got) != len(Goods()) {
		t.Errorf("Catalog(nonsense) should fall back to goods")
	}
}
