package gst

// Parameter names used by the automobile decision rules. They double as the
// keys of the user-supplied parameter map.
const (
	ParamEngineCapacity  = "Engine Capacity (cc)"
	ParamLength          = "Length (mm)"
	ParamFuelType        = "Fuel Type"
	ParamGroundClearance = "Ground Clearance (mm)"
	ParamVehicleType     = "Vehicle Type"
)

type InputKind string

const (
	InputNumeric    InputKind = "number"
	InputEnumerated InputKind = "select"
)

type Parameter struct {
	Name     string    `json:"name"`
	Kind     InputKind `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// RuleKind identifies the decision procedure of a parameterized product.
// The set is closed; products without parameters carry RuleNone and resolve
// to their base rate.
type RuleKind int

const (
	RuleNone RuleKind = iota
	RuleSmallCar
	RuleLargeCarSUV
	RuleTractor
	RuleRoadTractor
	RuleMotorcycleUpTo350
	RuleMotorcycleAbove350
)

type Product struct {
	Name       string      `json:"name"`
	BaseRate   int64       `json:"rate"`
	Conditions string      `json:"conditions"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Rule       RuleKind    `json:"-"`
}

type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

var engineParam = []Parameter{
	{Name: ParamEngineCapacity, Kind: InputNumeric, Required: true},
}

// goodsCategories is the illustrative goods rate table of the GST page.
// Rates are domain facts, not a legal authority.
var goodsCategories = []Category{
	{
		ID:   "food-beverages",
		Name: "Food & Beverages",
		Products: []Product{
			{Name: "UHT Milk", BaseRate: 0, Conditions: "Exempt"},
			{Name: "Plant-Based Milk Drinks", BaseRate: 5, Conditions: "e.g., almond, oat milk"},
			{Name: "Soya Milk Drinks", BaseRate: 5},
			{Name: "Indian Breads", BaseRate: 0, Conditions: "e.g., roti, paratha, porotta"},
			{Name: "Food Preparations", BaseRate: 5, Conditions: "not elsewhere specified"},
			{Name: "Paneer (Cottage Cheese)", BaseRate: 0, Conditions: "pre-packaged & labelled form"},
			{Name: "Natural Honey", BaseRate: 0, Conditions: "promotional rate - exempt to promote over artificial honey"},
			{Name: "Carbonated Beverages with Fruit Juice", BaseRate: 40, Conditions: "sin goods"},
			{Name: "Other Non-Alcoholic Beverages", BaseRate: 40, Conditions: "luxury goods"},
			{Name: "Toilet Soap Bars", BaseRate: 5, Conditions: "daily use items"},
			{Name: "Tendu Leaves", BaseRate: 5, Conditions: "minor forest produce"},
		},
	},
	{
		ID:   "agriculture",
		Name: "Agriculture",
		Products: []Product{
			{Name: "Agricultural Machinery", BaseRate: 5, Conditions: "e.g., sprinklers, harvesters"},
			{Name: "Small Agricultural Tractors", BaseRate: 5},
			{Name: "Raw Cotton", BaseRate: 5, Conditions: "reverse charge mechanism"},
		},
	},
	{
		ID:   "healthcare",
		Name: "Healthcare & Pharmaceuticals",
		Products: []Product{
			{Name: "Medicines/Drugs", BaseRate: 5, Conditions: "concessional rate"},
			{Name: "Medical Devices", BaseRate: 5, Conditions: "e.g., surgical apparatus"},
			{Name: "Face Powder & Shampoos", BaseRate: 5, Conditions: "daily use items"},
			{Name: "Toothpaste, Toothbrush, Dental Floss", BaseRate: 5, Conditions: "basic dental hygiene"},
			{Name: "Shaving Cream", BaseRate: 5, Conditions: "daily use item"},
			{Name: "Mouthwash", BaseRate: 18, Conditions: "not considered basic hygiene"},
		},
	},
	{
		ID:   "automobiles",
		Name: "Automobiles & Transportation",
		Products: []Product{
			{
				Name:       "Small Cars",
				BaseRate:   18,
				Conditions: "Petrol/LPG/CNG: ≤1200cc & ≤4000mm; Diesel: ≤1500cc & ≤4000mm",
				Rule:       RuleSmallCar,
				Parameters: []Parameter{
					{Name: ParamEngineCapacity, Kind: InputNumeric, Required: true},
					{Name: ParamLength, Kind: InputNumeric, Required: true},
					{Name: ParamFuelType, Kind: InputEnumerated, Required: true, Options: []string{"Petrol", "Diesel", "LPG", "CNG"}},
				},
			},
			{
				Name:       "Mid-size, Large Cars & SUVs",
				BaseRate:   40,
				Conditions: "engine >1500cc or length >4000mm; SUVs must also have ground clearance ≥170mm",
				Rule:       RuleLargeCarSUV,
				Parameters: []Parameter{
					{Name: ParamEngineCapacity, Kind: InputNumeric, Required: true},
					{Name: ParamLength, Kind: InputNumeric, Required: true},
					{Name: ParamGroundClearance, Kind: InputNumeric, Required: false},
					{Name: ParamVehicleType, Kind: InputEnumerated, Required: true, Options: []string{"Sedan", "SUV", "Hatchback"}},
				},
			},
			{Name: "Three-Wheelers", BaseRate: 18},
			{Name: "Buses", BaseRate: 18, Conditions: "vehicles for 10+ persons"},
			{Name: "Ambulances", BaseRate: 18},
			{Name: "Goods Transport Vehicles", BaseRate: 18, Conditions: "lorries, trucks"},
			{
				Name:       "Tractors",
				BaseRate:   5,
				Conditions: "except road tractors for semi-trailers >1800cc",
				Rule:       RuleTractor,
				Parameters: engineParam,
			},
			{
				Name:       "Road Tractors for semi-trailers",
				BaseRate:   18,
				Conditions: "engine >1800cc",
				Rule:       RuleRoadTractor,
				Parameters: engineParam,
			},
			{
				Name:       "Motorcycles (≤350cc)",
				BaseRate:   18,
				Rule:       RuleMotorcycleUpTo350,
				Parameters: engineParam,
			},
			{
				Name:       "Motorcycles (>350cc)",
				BaseRate:   40,
				Rule:       RuleMotorcycleAbove350,
				Parameters: engineParam,
			},
			{Name: "Bicycles & Parts", BaseRate: 5},
		},
	},
	{
		ID:   "electronics",
		Name: "Consumer Durables & Electronics",
		Products: []Product{
			{Name: "Air Conditioners", BaseRate: 18},
			{Name: "Dishwashers", BaseRate: 18},
			{Name: "TVs and Monitors", BaseRate: 18, Conditions: "uniform rate"},
			{Name: "Lithium-ion Batteries", BaseRate: 18},
			{Name: "Other Batteries", BaseRate: 18},
			{Name: "Spectacles & Goggles (vision correction)", BaseRate: 5},
			{Name: "Spectacles & Goggles (non-vision)", BaseRate: 18},
		},
	},
	{
		ID:   "textiles",
		Name: "Textiles & Leather",
		Products: []Product{
			{Name: "Job Work for Hides, Skins, Leather", BaseRate: 5, Conditions: "Chapter 41"},
			{Name: "Imitation Zari", BaseRate: 18, Conditions: "from metallised plastic film"},
		},
	},
	{
		ID:   "renewable",
		Name: "Renewable Energy & Infrastructure",
		Products: []Product{
			{Name: "Renewable Energy Equipment", BaseRate: 5},
			{Name: "Marble, Travertine, Granite Blocks", BaseRate: 5, Conditions: "intermediate goods"},
			{Name: "Coal", BaseRate: 12, Conditions: "merged rate - no additional burden from cess removal"},
		},
	},
	{
		ID:   "other",
		Name: "Other Goods",
		Products: []Product{
			{Name: "Cigarettes, Tobacco Products", BaseRate: 40, Conditions: "sin goods - special rate"},
			{Name: "Beedi", BaseRate: 40, Conditions: "sin goods - special rate"},
		},
	},
}

var serviceCategories = []Category{
	{
		ID:   "transportation",
		Name: "Transportation Services",
		Products: []Product{
			{Name: "General Passenger Transport", BaseRate: 5, Conditions: "No ITC"},
			{Name: "Air Passenger Transport (Economy)", BaseRate: 5},
			{Name: "Air Passenger Transport (Other)", BaseRate: 18},
			{Name: "Goods Transport (GTA)", BaseRate: 5, Conditions: "No ITC"},
			{Name: "Container Train Operator", BaseRate: 5, Conditions: "No ITC"},
		},
	},
	{
		ID:   "insurance",
		Name: "Insurance Services",
		Products: []Product{
			{Name: "Life Insurance", BaseRate: 0, Conditions: "Exempt"},
			{Name: "Health Insurance", BaseRate: 0, Conditions: "Exempt"},
		},
	},
	{
		ID:   "jobwork",
		Name: "Job Work Services",
		Products: []Product{
			{Name: "Pharmaceutical Products", BaseRate: 5, Conditions: "with ITC"},
			{Name: "Hides, Skins, Leather", BaseRate: 5, Conditions: "with ITC"},
			{Name: "Alcoholic Liquor", BaseRate: 18, Conditions: "with ITC"},
			{Name: "Residuary Job Work", BaseRate: 18},
		},
	},
	{
		ID:   "other-services",
		Name: "Other Services",
		Products: []Product{
			{Name: "Hotel Accommodation (≤₹7500)", BaseRate: 5, Conditions: "No ITC"},
			{Name: "Beauty & Wellness Services", BaseRate: 5, Conditions: "No ITC"},
			{Name: "Offshore Oil & Gas", BaseRate: 18},
			{Name: "Gambling, Casinos", BaseRate: 40, Conditions: "sin goods"},
			{Name: "Lottery, Gaming", BaseRate: 40, Conditions: "sin goods"},
			{Name: "Sporting Events (IPL)", BaseRate: 40},
			{Name: "Recognized Sporting Events (≤₹500)", BaseRate: 0, Conditions: "Exempt"},
			{Name: "Recognized Sporting Events (>₹500)", BaseRate: 18},
		},
	},
}

// Goods returns the goods rate table.
func Goods() []Category { return goodsCategories }

// Services returns the services rate table.
func Services() []Category { return serviceCategories }

// Catalog returns the table for a tab; unknown tabs resolve to goods.
func Catalog(tab string) []Category {
	if tab == "services" {
		return serviceCategories
	}
	return goodsCategories
}

// FindProduct searches both tabs for a product by exact name.
func FindProduct(name string) (Product, bool) {
	for _, tables := range [][]Category{goodsCategories, serviceCategories} {
		for _, cat := range tables {
			for _, p := range cat.Products {
				if p.Name == name {
					return p, true
				}
			}
		}
	}
	return Product{}, false
}
