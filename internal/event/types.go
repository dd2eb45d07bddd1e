package event

const (
	TileMined       EventType = "TileMined"
	OreCollected    EventType = "OreCollected"
	MiningBlocked   EventType = "MiningBlocked"
	PlayerLanded    EventType = "PlayerLanded"
	PlayerDied      EventType = "PlayerDied"
	HazardTriggered EventType = "HazardTriggered"
	GameSaved       EventType = "GameSaved"
	Purchase        EventType = "Purchase"
)
