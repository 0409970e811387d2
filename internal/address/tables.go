package address

// Canonicalization tables, keyed lowercase. Lookups lowercase the token
// first, so full words, abbreviations and uppercase variants all resolve;
// unrecognized tokens pass through unchanged.

// states maps full names and two-letter abbreviations to USPS codes.
var states = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",

	"al": "AL", "ak": "AK", "az": "AZ", "ar": "AR", "ca": "CA", "co": "CO",
	"ct": "CT", "de": "DE", "fl": "FL", "ga": "GA", "hi": "HI", "id": "ID",
	"il": "IL", "in": "IN", "ia": "IA", "ks": "KS", "ky": "KY", "la": "LA",
	"me": "ME", "md": "MD", "ma": "MA", "mi": "MI", "mn": "MN", "ms": "MS",
	"mo": "MO", "mt": "MT", "ne": "NE", "nv": "NV", "nh": "NH", "nj": "NJ",
	"nm": "NM", "ny": "NY", "nc": "NC", "nd": "ND", "oh": "OH", "ok": "OK",
	"or": "OR", "pa": "PA", "ri": "RI", "sc": "SC", "sd": "SD", "tn": "TN",
	"tx": "TX", "ut": "UT", "vt": "VT", "va": "VA", "wa": "WA", "wv": "WV",
	"wi": "WI", "wy": "WY",
}

// streetTypes maps street-type words and abbreviations to USPS suffixes.
var streetTypes = map[string]string{
	"alley": "ALY", "avenue": "AVE", "boulevard": "BLVD", "circle": "CIR",
	"court": "CT", "drive": "DR", "lane": "LN", "place": "PL",
	"road": "RD", "street": "ST", "way": "WAY", "parkway": "PKWY",
	"highway": "HWY", "terrace": "TER", "plaza": "PLZ", "square": "SQ",
	"trail": "TRL", "point": "PT", "ridge": "RDG", "loop": "LOOP",
	"park": "PARK", "expressway": "EXPY", "freeway": "FWY",

	"aly": "ALY", "ave": "AVE", "blvd": "BLVD", "cir": "CIR", "ct": "CT",
	"dr": "DR", "ln": "LN", "pl": "PL", "rd": "RD", "st": "ST", "wy": "WAY",
	"pkwy": "PKWY", "hwy": "HWY", "ter": "TER", "plz": "PLZ", "sq": "SQ",
	"trl": "TRL", "pt": "PT", "rdg": "RDG", "expy": "EXPY", "fwy": "FWY",
}

// directions maps compass words to one- or two-letter abbreviations.
var directions = map[string]string{
	"north": "N", "south": "S", "east": "E", "west": "W",
	"northeast": "NE", "northwest": "NW", "southeast": "SE", "southwest": "SW",
	"n": "N", "s": "S", "e": "E", "w": "W",
	"ne": "NE", "nw": "NW", "se": "SE", "sw": "SW",
}
