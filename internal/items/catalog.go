package items

const (
	ItemBerry      ItemID = "berry"
	ItemMushroom   ItemID = "mushroom"
	ItemTimber     ItemID = "timber"
	ItemStoneBlock ItemID = "stone_block"
	ItemClayBrick  ItemID = "clay_brick"
	ItemCompost    ItemID = "compost"
)

const (
	TagFood             ItemTag = "food"
	TagBuildingMaterial ItemTag = "building_material"
	TagTradeGood        ItemTag = "trade_good"
	TagHaulable         ItemTag = "haulable"
)

// DefaultManifest builds the stock item catalog for the colony economy.
func DefaultManifest() *Manifest {
	defs := []ItemDefinition{
		mustDefine(ItemDefinitionParams{
			ID:          ItemBerry,
			Name:        "Berry",
			Description: "A sweet forage staple gathered from meadow shrubs.",
			StackSize:   10,
			Tags:        []ItemTag{TagFood, TagHaulable},
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemMushroom,
			Name:        "Mushroom",
			Description: "A damp-loving fungus cultivated in shaded plots.",
			StackSize:   10,
			Tags:        []ItemTag{TagFood, TagHaulable},
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTimber,
			Name:        "Timber",
			Description: "Rough-cut lengths of wood ready for construction.",
			StackSize:   5,
			Tags:        []ItemTag{TagBuildingMaterial, TagTradeGood, TagHaulable},
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemStoneBlock,
			Name:        "Stone Block",
			Description: "Quarried stone squared off for load-bearing walls.",
			StackSize:   5,
			Tags:        []ItemTag{TagBuildingMaterial, TagTradeGood, TagHaulable},
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemClayBrick,
			Name:        "Clay Brick",
			Description: "Fired bricks traded along the river routes.",
			StackSize:   8,
			Tags:        []ItemTag{TagBuildingMaterial, TagTradeGood, TagHaulable},
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemCompost,
			Name:        "Compost",
			Description: "Decomposed scraps spread over growing beds.",
			StackSize:   20,
			Tags:        []ItemTag{TagHaulable},
		}),
	}

	manifest, err := NewManifest(defs)
	if err != nil {
		panic(err)
	}
	return manifest
}

func mustDefine(params ItemDefinitionParams) ItemDefinition {
	def, err := NewItemDefinition(params)
	if err != nil {
		panic(err)
	}
	return def
}
