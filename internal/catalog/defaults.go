package catalog

import "github.com/mamadbah2/feedration/internal/domain/models"

// defaultBreeds is ordered so the first entry doubles as the fallback breed.
var defaultBreeds = []models.AnimalBreed{
	{ID: "holstein", Name: "Holstein (Black Pied)", Category: models.CategoryCattle, MaintenanceEnergy: 0.52, MaintenanceProtein: 0.60},
	{ID: "simmental", Name: "Simmental", Category: models.CategoryCattle, MaintenanceEnergy: 0.55, MaintenanceProtein: 0.62},
	{ID: "angus", Name: "Angus", Category: models.CategoryCattle, MaintenanceEnergy: 0.50, MaintenanceProtein: 0.58},
	{ID: "limousin", Name: "Limousin", Category: models.CategoryCattle, MaintenanceEnergy: 0.53, MaintenanceProtein: 0.60},
	{ID: "hereford", Name: "Hereford", Category: models.CategoryCattle, MaintenanceEnergy: 0.51, MaintenanceProtein: 0.59},
	{ID: "charolais", Name: "Charolais", Category: models.CategoryCattle, MaintenanceEnergy: 0.54, MaintenanceProtein: 0.61},
	{ID: "brown_swiss", Name: "Brown Swiss", Category: models.CategoryCattle, MaintenanceEnergy: 0.53, MaintenanceProtein: 0.61},
	{ID: "jersey", Name: "Jersey", Category: models.CategoryCattle, MaintenanceEnergy: 0.58, MaintenanceProtein: 0.65},
	{ID: "belgian_blue", Name: "Belgian Blue", Category: models.CategoryCattle, MaintenanceEnergy: 0.56, MaintenanceProtein: 0.63},
	{ID: "wagyu", Name: "Wagyu", Category: models.CategoryCattle, MaintenanceEnergy: 0.52, MaintenanceProtein: 0.60},
	{ID: "domestic_red", Name: "Native Southern Yellow / Grey", Category: models.CategoryCattle, MaintenanceEnergy: 0.48, MaintenanceProtein: 0.55},

	{ID: "merino", Name: "Merino (Anatolian/Karacabey)", Category: models.CategorySheep, MaintenanceEnergy: 0.42, MaintenanceProtein: 1.1},
	{ID: "akkaraman", Name: "Akkaraman", Category: models.CategorySheep, MaintenanceEnergy: 0.40, MaintenanceProtein: 1.0},
	{ID: "morkaraman", Name: "Morkaraman", Category: models.CategorySheep, MaintenanceEnergy: 0.41, MaintenanceProtein: 1.0},
	{ID: "awassi", Name: "Awassi", Category: models.CategorySheep, MaintenanceEnergy: 0.43, MaintenanceProtein: 1.2},
	{ID: "suffolk", Name: "Suffolk", Category: models.CategorySheep, MaintenanceEnergy: 0.45, MaintenanceProtein: 1.3},
	{ID: "dorper", Name: "Dorper", Category: models.CategorySheep, MaintenanceEnergy: 0.44, MaintenanceProtein: 1.25},
	{ID: "romanov", Name: "Romanov", Category: models.CategorySheep, MaintenanceEnergy: 0.46, MaintenanceProtein: 1.4},
	{ID: "karayaka", Name: "Karayaka", Category: models.CategorySheep, MaintenanceEnergy: 0.39, MaintenanceProtein: 1.0},
	{ID: "chios", Name: "Chios", Category: models.CategorySheep, MaintenanceEnergy: 0.44, MaintenanceProtein: 1.2},
	{ID: "kivircik", Name: "Kivircik", Category: models.CategorySheep, MaintenanceEnergy: 0.41, MaintenanceProtein: 1.1},

	{ID: "saanen", Name: "Saanen", Category: models.CategoryGoat, MaintenanceEnergy: 0.45, MaintenanceProtein: 1.2},
	{ID: "hair_goat", Name: "Anatolian Black (Hair Goat)", Category: models.CategoryGoat, MaintenanceEnergy: 0.43, MaintenanceProtein: 1.1},
	{ID: "boer", Name: "Boer", Category: models.CategoryGoat, MaintenanceEnergy: 0.42, MaintenanceProtein: 1.3},
	{ID: "angora", Name: "Angora (Mohair)", Category: models.CategoryGoat, MaintenanceEnergy: 0.40, MaintenanceProtein: 1.0},
	{ID: "honamli", Name: "Honamli", Category: models.CategoryGoat, MaintenanceEnergy: 0.44, MaintenanceProtein: 1.15},
	{ID: "alpine", Name: "Alpine", Category: models.CategoryGoat, MaintenanceEnergy: 0.46, MaintenanceProtein: 1.2},
	{ID: "maltese", Name: "Maltese", Category: models.CategoryGoat, MaintenanceEnergy: 0.45, MaintenanceProtein: 1.2},
}

var defaultFeeds = []models.Feed{
	// Energy concentrates
	{ID: "corn", Name: "Corn (grain)", Group: models.FeedGroupEnergy, DryMatterPercent: 88, MetabolizableEnergy: 13.5, CrudeProtein: 9.0, Calcium: 0.02, Phosphorus: 0.30, Magnesium: 0.12, Sodium: 0.02, PricePerKg: 9.2},
	{ID: "barley", Name: "Barley (grain)", Group: models.FeedGroupEnergy, DryMatterPercent: 88, MetabolizableEnergy: 12.5, CrudeProtein: 11.5, Calcium: 0.05, Phosphorus: 0.35, Magnesium: 0.15, Sodium: 0.03, PricePerKg: 8.5},
	{ID: "wheat", Name: "Wheat (grain)", Group: models.FeedGroupEnergy, DryMatterPercent: 89, MetabolizableEnergy: 13.2, CrudeProtein: 12.5, Calcium: 0.05, Phosphorus: 0.40, Magnesium: 0.15, Sodium: 0.01, PricePerKg: 9.8},
	{ID: "oats", Name: "Oats", Group: models.FeedGroupEnergy, DryMatterPercent: 89, MetabolizableEnergy: 11.5, CrudeProtein: 11.0, Calcium: 0.10, Phosphorus: 0.35, Magnesium: 0.16, Sodium: 0.05, PricePerKg: 8.8},
	{ID: "molasses", Name: "Molasses (sugar beet)", Group: models.FeedGroupEnergy, DryMatterPercent: 75, MetabolizableEnergy: 12.0, CrudeProtein: 6.0, Calcium: 0.80, Phosphorus: 0.05, Magnesium: 0.30, Sodium: 1.20, PricePerKg: 6.5},
	{ID: "sorghum", Name: "Sorghum", Group: models.FeedGroupEnergy, DryMatterPercent: 89, MetabolizableEnergy: 12.8, CrudeProtein: 10.0, Calcium: 0.04, Phosphorus: 0.32, Magnesium: 0.17, Sodium: 0.01, PricePerKg: 8.2},

	// Protein meals
	{ID: "soybean_meal", Name: "Soybean meal (44%)", Group: models.FeedGroupProtein, DryMatterPercent: 90, MetabolizableEnergy: 13.0, CrudeProtein: 44.0, Calcium: 0.30, Phosphorus: 0.65, Magnesium: 0.30, Sodium: 0.03, PricePerKg: 19.5},
	{ID: "sunflower_meal", Name: "Sunflower meal (36% CP)", Group: models.FeedGroupProtein, DryMatterPercent: 91, MetabolizableEnergy: 10.5, CrudeProtein: 36.0, Calcium: 0.40, Phosphorus: 0.90, Magnesium: 0.70, Sodium: 0.03, PricePerKg: 11.5},
	{ID: "cottonseed_meal", Name: "Cottonseed meal", Group: models.FeedGroupProtein, DryMatterPercent: 92, MetabolizableEnergy: 10.2, CrudeProtein: 32.0, Calcium: 0.20, Phosphorus: 1.10, Magnesium: 0.60, Sodium: 0.05, PricePerKg: 12.0},
	{ID: "canola_meal", Name: "Canola meal", Group: models.FeedGroupProtein, DryMatterPercent: 91, MetabolizableEnergy: 11.5, CrudeProtein: 35.0, Calcium: 0.65, Phosphorus: 1.00, Magnesium: 0.60, Sodium: 0.10, PricePerKg: 13.5},
	{ID: "corn_gluten_feed", Name: "Corn gluten feed", Group: models.FeedGroupProtein, DryMatterPercent: 90, MetabolizableEnergy: 11.8, CrudeProtein: 21.0, Calcium: 0.15, Phosphorus: 0.80, Magnesium: 0.40, Sodium: 0.15, PricePerKg: 10.5},
	{ID: "distillers_grains", Name: "DDGS (corn)", Group: models.FeedGroupProtein, DryMatterPercent: 90, MetabolizableEnergy: 12.5, CrudeProtein: 27.0, Calcium: 0.10, Phosphorus: 0.75, Magnesium: 0.30, Sodium: 0.25, PricePerKg: 12.8},

	// By-products
	{ID: "wheat_bran", Name: "Wheat bran", Group: models.FeedGroupByProduct, DryMatterPercent: 89, MetabolizableEnergy: 10.5, CrudeProtein: 16.0, Calcium: 0.14, Phosphorus: 1.20, Magnesium: 0.60, Sodium: 0.05, PricePerKg: 7.2},
	{ID: "beet_pulp_dry", Name: "Beet pulp (dry)", Group: models.FeedGroupByProduct, DryMatterPercent: 90, MetabolizableEnergy: 11.5, CrudeProtein: 9.0, Calcium: 0.70, Phosphorus: 0.10, Magnesium: 0.25, Sodium: 0.20, PricePerKg: 8.0},
	{ID: "beet_pulp_wet", Name: "Beet pulp (wet)", Group: models.FeedGroupByProduct, DryMatterPercent: 15, MetabolizableEnergy: 11.0, CrudeProtein: 8.5, Calcium: 0.65, Phosphorus: 0.08, Magnesium: 0.25, Sodium: 0.20, PricePerKg: 1.8},

	// Roughage
	{ID: "alfalfa_hay", Name: "Alfalfa hay (early bloom)", Group: models.FeedGroupRoughage, DryMatterPercent: 90, MetabolizableEnergy: 9.5, CrudeProtein: 18.5, Calcium: 1.45, Phosphorus: 0.25, Magnesium: 0.30, Sodium: 0.12, PricePerKg: 8.5},
	{ID: "corn_silage", Name: "Corn silage (good quality)", Group: models.FeedGroupRoughage, DryMatterPercent: 33, MetabolizableEnergy: 10.8, CrudeProtein: 8.5, Calcium: 0.25, Phosphorus: 0.20, Magnesium: 0.20, Sodium: 0.01, PricePerKg: 3.2},
	{ID: "wheat_straw", Name: "Wheat straw", Group: models.FeedGroupRoughage, DryMatterPercent: 90, MetabolizableEnergy: 6.0, CrudeProtein: 3.5, Calcium: 0.40, Phosphorus: 0.10, Magnesium: 0.12, Sodium: 0.14, PricePerKg: 2.5},
	{ID: "vetch_oat_hay", Name: "Vetch-oat hay", Group: models.FeedGroupRoughage, DryMatterPercent: 88, MetabolizableEnergy: 8.8, CrudeProtein: 14.0, Calcium: 1.10, Phosphorus: 0.22, Magnesium: 0.25, Sodium: 0.10, PricePerKg: 7.0},
	{ID: "meadow_hay", Name: "Meadow hay", Group: models.FeedGroupRoughage, DryMatterPercent: 89, MetabolizableEnergy: 8.2, CrudeProtein: 10.0, Calcium: 0.60, Phosphorus: 0.20, Magnesium: 0.20, Sodium: 0.10, PricePerKg: 6.5},
	{ID: "cottonseed_hull", Name: "Cottonseed hulls", Group: models.FeedGroupRoughage, DryMatterPercent: 91, MetabolizableEnergy: 6.5, CrudeProtein: 4.0, Calcium: 0.15, Phosphorus: 0.10, Magnesium: 0.15, Sodium: 0.02, PricePerKg: 5.5},

	// Minerals and additives
	{ID: "dcp", Name: "Dicalcium phosphate", Group: models.FeedGroupMineral, DryMatterPercent: 97, Calcium: 23.0, Phosphorus: 18.0, Magnesium: 0.60, Sodium: 0.05, PricePerKg: 25.0},
	{ID: "limestone", Name: "Limestone (calcium carbonate)", Group: models.FeedGroupMineral, DryMatterPercent: 99, Calcium: 38.0, Magnesium: 0.50, PricePerKg: 4.5},
	{ID: "salt", Name: "Feed salt", Group: models.FeedGroupMineral, DryMatterPercent: 99, Sodium: 39.3, PricePerKg: 5.0},
	{ID: "sodium_bicarbonate", Name: "Sodium bicarbonate (buffer)", Group: models.FeedGroupMineral, DryMatterPercent: 99, Sodium: 27.0, Bicarbonate: 72.0, PricePerKg: 20.0},
	{ID: "premix", Name: "Vitamin-mineral premix", Group: models.FeedGroupMineral, DryMatterPercent: 95, Calcium: 10.0, Phosphorus: 5.0, Magnesium: 4.0, Sodium: 5.0, PricePerKg: 85.0},
}
