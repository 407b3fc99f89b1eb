package world

import "haul-and-hoard/server/internal/items"

const (
	StructureGranaryChute  StructureType = "granary_chute"
	StructureLumberChute   StructureType = "lumber_chute"
	StructureCollectionBin StructureType = "collection_bin"
	StructureExportDock    StructureType = "export_dock"
	StructureGravelPath    StructureType = "gravel_path"
)

// DefaultStructureManifest builds the stock structure catalog.
func DefaultStructureManifest() *StructureManifest {
	defs := []StructureDefinition{
		mustDefineStructure(StructureDefinitionParams{
			ID:          StructureGranaryChute,
			Name:        "Granary Chute",
			Description: "Tips harvested berries out onto the ground in front of it.",
			Kind:        StructureKindReleaser,
			MaxHeight:   1,
			MaxWorkers:  2,
			Slots: []SlotConfig{
				{Filter: items.KindOf(items.ItemBerry)},
			},
		}),
		mustDefineStructure(StructureDefinitionParams{
			ID:          StructureLumberChute,
			Name:        "Lumber Chute",
			Description: "Slides finished building materials down to the staging ground.",
			Kind:        StructureKindReleaser,
			MaxHeight:   2,
			MaxWorkers:  2,
			Slots: []SlotConfig{
				{Filter: items.KindOfTag(items.TagBuildingMaterial)},
			},
		}),
		mustDefineStructure(StructureDefinitionParams{
			ID:          StructureCollectionBin,
			Name:        "Collection Bin",
			Description: "Sweeps up anything haulable dropped on its cell.",
			Kind:        StructureKindAbsorber,
			MaxHeight:   1,
			MaxWorkers:  4,
			Slots: []SlotConfig{
				{Filter: items.KindOfTag(items.TagHaulable)},
				{Filter: items.KindOfTag(items.TagHaulable)},
			},
		}),
		mustDefineStructure(StructureDefinitionParams{
			ID:          StructureExportDock,
			Name:        "Export Dock",
			Description: "A tall dock that skims trade goods even off flooded ground.",
			Kind:        StructureKindAbsorber,
			MaxHeight:   3,
			MaxWorkers:  6,
			Slots: []SlotConfig{
				{Filter: items.KindOfTag(items.TagTradeGood)},
				{Filter: items.KindOfTag(items.TagTradeGood)},
				{Filter: items.KindOfTag(items.TagTradeGood)},
			},
		}),
		mustDefineStructure(StructureDefinitionParams{
			ID:          StructureGravelPath,
			Name:        "Gravel Path",
			Description: "Packed gravel that keeps workers out of the mud.",
			Kind:        StructureKindPath,
			MaxHeight:   1,
			WalkThrough: true,
		}),
	}

	manifest, err := NewStructureManifest(defs)
	if err != nil {
		panic(err)
	}
	return manifest
}

func mustDefineStructure(params StructureDefinitionParams) StructureDefinition {
	def, err := NewStructureDefinition(params)
	if err != nil {
		panic(err)
	}
	return def
}
