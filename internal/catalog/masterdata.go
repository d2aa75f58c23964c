package catalog

const (
	DefaultSize         = 732
	DefaultPriceCeiling = 10000

	defaultImage     = "https://cdn.akamai.steamstatic.com/steam/apps/730/header.jpg"
	emailIncludedTxt = "Включен в покупку"
)

var defaultGames = []string{
	"CS:GO", "Dota 2", "PUBG", "GTA V", "Red Dead Redemption 2", "Cyberpunk 2077",
	"Elden Ring", "The Witcher 3", "Dark Souls 3", "Sekiro", "Baldur's Gate 3",
	"Starfield", "Hogwarts Legacy", "Resident Evil 4", "Dead Space", "FIFA 24",
	"Apex Legends", "Rust", "ARK", "Valheim", "Terraria", "Stardew Valley",
	"Hades", "Hollow Knight", "Celeste", "Dead Cells", "Rainbow Six Siege",
	"Counter-Strike 2", "Team Fortress 2", "Left 4 Dead 2", "Portal 2", "Half-Life 2",
	"Garry's Mod", "Call of Duty: Modern Warfare", "Battlefield 2042", "Overwatch 2",
	"Fortnite", "Warzone 2.0", "Minecraft", "Among Us", "Fall Guys",
	"Rocket League", "FIFA 23", "NBA 2K24", "Madden NFL 24", "UFC 5",
	"Mortal Kombat 11", "Street Fighter 6", "Tekken 8", "Dragon Ball Z Kakarot",
	"Naruto Storm 4", "One Piece Odyssey", "Assassin's Creed Valhalla", "Far Cry 6",
	"Watch Dogs Legion", "Ghost Recon Breakpoint", "The Division 2", "Splinter Cell",
	"Prince of Persia", "Rayman Legends", "Metal Gear Solid V", "Death Stranding",
	"Horizon Zero Dawn", "God of War", "Spider-Man Remastered", "Days Gone",
	"The Last of Us Part I", "Uncharted 4", "Bloodborne", "Demon's Souls",
	"Nioh 2", "Ghost of Tsushima", "Control", "Alan Wake 2", "Quantum Break",
	"Max Payne 3", "Mafia Definitive Edition", "Hitman 3", "Dishonored 2",
	"Prey", "BioShock Infinite", "Borderlands 3", "Destiny 2", "Warframe",
	"Path of Exile", "Diablo IV", "Lost Ark", "Black Desert Online", "Guild Wars 2",
	"Final Fantasy XIV", "World of Warcraft", "Elder Scrolls Online", "New World",
	"Star Wars Jedi Survivor", "Dying Light 2", "Dead Island 2",
	"Resident Evil Village", "Resident Evil 2", "Silent Hill 2", "Outlast 2",
	"Amnesia Rebirth", "Phasmophobia", "Lethal Company", "Content Warning",
	"Sons of The Forest", "Palworld", "Enshrouded", "V Rising", "Conan Exiles",
	"Subnautica", "Subnautica Below Zero", "No Man's Sky", "Elite Dangerous",
	"Star Citizen", "Kerbal Space Program", "Stellaris", "Civilization VI",
	"Total War Warhammer 3", "Age of Empires IV", "Starcraft II", "Command & Conquer",
	"XCOM 2", "Divinity Original Sin 2", "Pillars of Eternity", "Wasteland 3",
	"Fallout 4", "Fallout 76", "Skyrim Special Edition", "Oblivion", "Morrowind",
	"Dragon Age Inquisition", "Mass Effect Legendary", "Witcher 2", "Witcher 1",
	"Kingdom Come Deliverance", "Mount & Blade II", "Crusader Kings 3", "Europa Universalis IV",
	"Hearts of Iron IV", "Victoria 3", "Cities Skylines", "Planet Zoo", "Planet Coaster",
	"Two Point Hospital", "RimWorld", "Oxygen Not Included", "Factorio", "Satisfactory",
	"Automation", "BeamNG.drive", "Euro Truck Simulator 2", "American Truck Simulator",
	"Farming Simulator 22", "Microsoft Flight Simulator", "DCS World", "X-Plane 12",
	"iRacing", "Assetto Corsa", "Project Cars 3", "F1 2023", "WRC Generations",
	"MotoGP 23", "RIDE 5", "Gran Turismo 7", "Forza Horizon 5", "Forza Motorsport",
}

var defaultPrivileges = []string{
	"Steam Guard включен",
	"Нет ограничений торговли",
	"Полный доступ к Market",
	"Возможность добавлять друзей",
	"Участие в сообществе",
	"Prime Status",
	"Family Sharing доступен",
	"Без VAC банов",
	"Email подтвержден",
	"Номер телефона привязан",
}

var defaultRegions = []string{"Россия", "Казахстан", "Украина", "Европа", "Любой регион"}

var defaultTemplates = []Template{
	{
		Category:        CategoryBudget,
		DisplayName:     "Стартовый",
		GamesCount:      Range{3, 5},
		Price:           Range{299, 599},
		Level:           Range{5, 15},
		Hours:           Range{50, 200},
		PrivilegesCount: Range{3, 5},
	},
	{
		Category:        CategoryStandard,
		DisplayName:     "Стандарт",
		GamesCount:      Range{5, 10},
		Price:           Range{699, 1499},
		Level:           Range{15, 30},
		Hours:           Range{200, 500},
		PrivilegesCount: Range{5, 7},
	},
	{
		Category:        CategoryPremium,
		DisplayName:     "Премиум",
		GamesCount:      Range{10, 20},
		Price:           Range{1599, 3499},
		Level:           Range{30, 60},
		Hours:           Range{500, 1500},
		PrivilegesCount: Range{7, 9},
	},
	{
		Category:        CategoryUltimate,
		DisplayName:     "Ультимейт",
		GamesCount:      Range{20, 50},
		Price:           Range{3999, 8999},
		Level:           Range{60, 150},
		Hours:           Range{1500, 5000},
		PrivilegesCount: Range{8, 10},
	},
}
