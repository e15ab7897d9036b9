package teams

var displayNames = map[string]string{
	"Albania":        "Albania",
	"Austria":        "Austria",
	"Belgium":        "Bélgica",
	"Croatia":        "Croacia",
	"Czech Republic": "República Checa",
	"Denmark":        "Dinamarca",
	"England":        "Inglaterra",
	"France":         "Francia",
	"Georgia":        "Georgia",
	"Germany":        "Alemania",
	"Hungary":        "Hungría",
	"Italy":          "Italia",
	"Netherlands":    "Países Bajos",
	"Poland":         "Polonia",
	"Portugal":       "Portugal",
	"Romania":        "Rumanía",
	"Scotland":       "Escocia",
	"Serbia":         "Serbia",
	"Slovakia":       "Eslovaquia",
	"Slovenia":       "Eslovenia",
	"Spain":          "España",
	"Switzerland":    "Suiza",
	"Turkey":         "Turquía",
	"Ukraine":        "Ucrania",
}

var teamCodes = map[string]string{
	"Albania":        "ALB",
	"Austria":        "AUT",
	"Belgium":        "BEL",
	"Croatia":        "CRO",
	"Czech Republic": "CZE",
	"Denmark":        "DEN",
	"England":        "ENG",
	"France":         "FRA",
	"Georgia":        "GEO",
	"Germany":        "GER",
	"Hungary":        "HUN",
	"Italy":          "ITA",
	"Netherlands":    "NED",
	"Poland":         "POL",
	"Portugal":       "POR",
	"Romania":        "ROU",
	"Scotland":       "SCO",
	"Serbia":         "SRB",
	"Slovakia":       "SVK",
	"Slovenia":       "SVN",
	"Spain":          "ESP",
	"Switzerland":    "SUI",
	"Turkey":         "TUR",
	"Ukraine":        "UKR",
}
