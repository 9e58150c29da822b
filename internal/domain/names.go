package domain

// commonNameDesignations maps lowercase well-known names to the
// catalog designation they resolve to. Used by the second scoring
// rule: an exact dictionary hit outranks every similarity heuristic.
var commonNameDesignations = map[string]string{
	"andromeda galaxy":     "M31",
	"triangulum galaxy":    "M33",
	"whirlpool galaxy":     "M51",
	"sombrero galaxy":      "M104",
	"pinwheel galaxy":      "M101",
	"bode's galaxy":        "M81",
	"cigar galaxy":         "M82",
	"black eye galaxy":     "M64",
	"sunflower galaxy":     "M63",
	"crab nebula":          "M1",
	"lagoon nebula":        "M8",
	"eagle nebula":         "M16",
	"omega nebula":         "M17",
	"trifid nebula":        "M20",
	"dumbbell nebula":      "M27",
	"ring nebula":          "M57",
	"orion nebula":         "M42",
	"owl nebula":           "M97",
	"little dumbbell":      "M76",
	"pleiades":             "M45",
	"beehive cluster":      "M44",
	"hercules cluster":     "M13",
	"wild duck cluster":    "M11",
	"butterfly cluster":    "M6",
	"ptolemy cluster":      "M7",
	"horsehead nebula":     "IC434",
	"flame nebula":         "NGC2024",
	"rosette nebula":       "NGC2237",
	"double cluster":       "NGC869",
	"north america nebula": "NGC7000",
	"helix nebula":         "NGC7293",
	"cat's eye nebula":     "NGC6543",
	"veil nebula":          "NGC6960",
	"crescent nebula":      "NGC6888",
	"pacman nebula":        "NGC281",
	"heart nebula":         "IC1805",
	"soul nebula":          "IC1848",
	"california nebula":    "NGC1499",
	"elephant's trunk":     "IC1396",
	"bubble nebula":        "NGC7635",
	"eskimo nebula":        "NGC2392",
	"sculptor galaxy":      "NGC253",
	"needle galaxy":        "NGC4565",
	"centaurus a":          "NGC5128",
	"omega centauri":       "NGC5139",
}

// phoneticVariants maps a canonical lowercase common name to the
// misspellings and short forms people actually type. A query matching
// one of these (exactly or near-exactly) resolves to the designation
// of the canonical name.
var phoneticVariants = map[string][]string{
	"andromeda galaxy": {"andromeda", "andromida", "andromedia", "adromeda", "andremeda"},
	"orion nebula":     {"orion nebulae", "orian nebula", "orien nebula"},
	"pleiades":         {"pleides", "pliades", "plaides", "pleaides", "seven sisters", "subaru"},
	"crab nebula":      {"crab nebulae", "krab nebula"},
	"whirlpool galaxy": {"whirlpool", "wirlpool galaxy"},
	"ring nebula":      {"ring nebulae"},
	"dumbbell nebula":  {"dumbell nebula", "dumbbel nebula"},
	"horsehead nebula": {"horse head nebula", "horsehead"},
	"hercules cluster": {"hercules globular", "great hercules cluster"},
	"sombrero galaxy":  {"sombrero", "sombraro galaxy"},
	"rosette nebula":   {"rosete nebula", "rosetta nebula"},
	"helix nebula":     {"helix"},
	"beehive cluster":  {"beehive", "praesepe"},
	"veil nebula":      {"vail nebula", "veil"},
}

// CommonNameDesignation resolves a lowercase query to a catalog
// designation through the common-name dictionary.
func CommonNameDesignation(lower string) (string, bool) {
	d, ok := commonNameDesignations[lower]
	return d, ok
}
