// Package rrsched finds minimum-cost single round-robin schedules by
// branch-and-price.
//
// 🚀 What is rrsched?
//
//	A small, pure-Go solver for the question "which pair of teams meets in
//	which round?" Given n teams (n even) and a cost for every
//	(match, round) cell, it returns a schedule of n-1 rounds in which every
//	team plays once per round and every pair meets exactly once, with the
//	smallest total cost, plus a proof of optimality.
//
// Under the hood:
//
//	srr/       index map, cost tensor, instance reader/writer, schedules
//	matching/  exact maximum-weight perfect matching (blossom algorithm)
//	simplex/   two-phase tableau LP with duals and Farkas rays, on gonum mat
//	master/    restricted master LP over (round, matching) columns
//	bnp/       pricing, propagation, strong branching and the search loop
//	compact/   LP bound of the (match, round) assignment formulation
//	logger/    leveled loggers shared by the packages and the CLI
//	cmd/srr/   command-line tool: solve, generate, bound
//
// Quick example, four teams:
//
//	round 0: 0-1 2-3
//	round 1: 0-2 1-3
//	round 2: 0-3 1-2
//
//	go install github.com/katalvlaran/rrsched/cmd/srr@latest
//	srr generate 8 --seed 3 -o eight.txt && srr solve eight.txt
package rrsched
