package service

import "points-exchange/internal/core/domain"

// defaultCatalog is the static per-program reward catalogue used to narrate
// what a balance is worth. Costs are in the program's own points.
var defaultCatalog = map[domain.Program][]domain.Reward{
	domain.ProgramXPoints: {
		{Program: domain.ProgramXPoints, Name: "$25 Gift Card", Cost: 5_000, Category: "gift_card"},
		{Program: domain.ProgramXPoints, Name: "$100 Gift Card", Cost: 18_000, Category: "gift_card"},
		{Program: domain.ProgramXPoints, Name: "Noise-Cancelling Headphones", Cost: 55_000, Category: "merchandise"},
		{Program: domain.ProgramXPoints, Name: "Weekend Hotel Stay", Cost: 90_000, Category: "travel"},
	},
	domain.ProgramQantas: {
		{Program: domain.ProgramQantas, Name: "Sydney-Melbourne Economy", Cost: 8_000, Category: "flight"},
		{Program: domain.ProgramQantas, Name: "Domestic Upgrade", Cost: 10_900, Category: "upgrade"},
		{Program: domain.ProgramQantas, Name: "Sydney-Singapore Economy", Cost: 25_200, Category: "flight"},
		{Program: domain.ProgramQantas, Name: "Sydney-London Economy", Cost: 55_200, Category: "flight"},
		{Program: domain.ProgramQantas, Name: "Sydney-London Business", Cost: 144_600, Category: "flight"},
	},
	domain.ProgramVelocity: {
		{Program: domain.ProgramVelocity, Name: "Melbourne-Brisbane Economy", Cost: 7_800, Category: "flight"},
		{Program: domain.ProgramVelocity, Name: "Lounge Membership (1yr)", Cost: 32_000, Category: "membership"},
		{Program: domain.ProgramVelocity, Name: "Sydney-Los Angeles Economy", Cost: 47_900, Category: "flight"},
	},
	domain.ProgramFlybuys: {
		{Program: domain.ProgramFlybuys, Name: "$10 Off Groceries", Cost: 2_000, Category: "discount"},
		{Program: domain.ProgramFlybuys, Name: "$50 Off Groceries", Cost: 10_000, Category: "discount"},
		{Program: domain.ProgramFlybuys, Name: "Stand Mixer", Cost: 38_000, Category: "merchandise"},
	},
	domain.ProgramAsiaMiles: {
		{Program: domain.ProgramAsiaMiles, Name: "Hong Kong-Taipei Economy", Cost: 10_000, Category: "flight"},
		{Program: domain.ProgramAsiaMiles, Name: "Hong Kong-Tokyo Economy", Cost: 20_000, Category: "flight"},
		{Program: domain.ProgramAsiaMiles, Name: "Hong Kong-New York Business", Cost: 85_000, Category: "flight"},
	},
	domain.ProgramKrisFlyer: {
		{Program: domain.ProgramKrisFlyer, Name: "Singapore-Bangkok Economy", Cost: 13_500, Category: "flight"},
		{Program: domain.ProgramKrisFlyer, Name: "Singapore-Sydney Economy", Cost: 31_000, Category: "flight"},
		{Program: domain.ProgramKrisFlyer, Name: "Suites Upgrade SIN-LHR", Cost: 120_000, Category: "upgrade"},
	},
}
