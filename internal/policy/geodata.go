package policy

// Keyword banks backing the geo-scope classifier. All entries are lowercase;
// the classifier lowercases its input before matching. The banks are fixed
// at compile time and never mutated.

var euMemberStates = []string{
	"austria",
	"belgium",
	"bulgaria",
	"croatia",
	"cyprus",
	"czechia",
	"czech republic",
	"denmark",
	"estonia",
	"finland",
	"france",
	"germany",
	"greece",
	"hungary",
	"ireland",
	"italy",
	"latvia",
	"lithuania",
	"luxembourg",
	"malta",
	"netherlands",
	"poland",
	"portugal",
	"romania",
	"slovakia",
	"slovenia",
	"spain",
	"sweden",
}

// EEA members outside the EU.
var eogCountries = []string{
	"norway",
	"iceland",
	"liechtenstein",
}

var euRegionKeywords = []string{
	"europe",
	"within eu",
	"eu-wide",
	"eu wide",
	"europe-wide",
	"europe wide",
	"europe only",
	"european economic area",
	"eea",
}

var ukKeywords = []string{
	"united kingdom",
	"uk only",
	"uk-based",
	"uk based",
	"britain",
	"london",
	"england",
	"scotland",
	"wales",
	"northern ireland",
}

var usStrongSignals = []string{
	"united states only",
	"usa only",
	"u.s. only",
	"us only",
	"remote us",
	"remote in the us",
	"remote within the us",
	"remote within united states",
	"us-based only",
	"us based only",
	"u.s.-based only",
	"must live in the us",
	"must be in the us",
	"must reside in the us",
	"must be based in the us",
	"must be us-based",
	"us residents only",
	"within the united states",
	"within united states",
	"u.s.-based",
	"us-based",
	"united states",
	"u.s.",
	"usa",
}

var canadaStrongSignals = []string{
	"canada only",
	"canadian residents only",
	"remote canada",
	"remote in canada",
	"canada-based",
	"canada based",
	"must live in canada",
	"must be based in canada",
	"must reside in canada",
	"within canada",
	"canada",
}

var apacStrongSignals = []string{
	"apac only",
	"within apac",
	"asia pacific",
	"apac",
}

var australiaStrongSignals = []string{
	"australia only",
	"australia-based",
	"australia based",
	"must live in australia",
	"within australia",
	"australia",
}

var indiaStrongSignals = []string{
	"india only",
	"india-based",
	"india based",
	"must live in india",
	"within india",
	"india",
}

var latamStrongSignals = []string{
	"latam only",
	"within latam",
	"latin america",
	"latam",
}

// nonEUSignalGroups fixes the priority order of the hard non-EU scan.
var nonEUSignalGroups = [][]string{
	usStrongSignals,
	canadaStrongSignals,
	apacStrongSignals,
	australiaStrongSignals,
	indiaStrongSignals,
	latamStrongSignals,
	nonEURestricted,
}

// nonEURestricted is the generic catch-all scanned last. Phrases already
// present in the regional groups above would never be reached here, so only
// the extras are listed.
var nonEURestricted = []string{
	"north america only",
}

// usStateCodes deliberately excludes ambiguous short forms (IN, OR, ME, HI).
var usStateCodes = []string{
	"al", "ak", "az", "ar", "ca", "co", "ct", "dc", "de", "fl",
	"ga", "ia", "id", "il", "ks", "ky", "la", "ma", "md", "mi",
	"mn", "mo", "ms", "mt", "nc", "nd", "ne", "nh", "nj", "nm",
	"nv", "ny", "oh", "ok", "pa", "ri", "sc", "sd", "tn", "tx",
	"ut", "va", "vt", "wa", "wi", "wv", "wy",
}

// usStateSignalThreshold is the number of distinct state codes that counts
// as strong evidence of a US-only audience list.
const usStateSignalThreshold = 3
