// Package scenario loads Lua scenario scripts and replays them against the
// game gRPC API.
//
// A script builds a Scenario through method calls:
//
//	local scene = Scenario.new("first catch")
//	scene:player({name = "ash"})
//	scene:catch({player = "ash", species = "sp-flametail", expect = "success", attempts = 5})
//	scene:battle({player = "ash", mode = "wild", species = "sp-aqualing"})
//	scene:expect_profile({player = "ash", achievements = {"catch_1"}})
//	return scene
//
// Each call records a Step; the Runner executes the steps in order.
package scenario
