package app

// CollectInventory exposes collectInventory for testing.
var CollectInventory = collectInventory
