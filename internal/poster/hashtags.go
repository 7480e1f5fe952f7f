package poster

import (
	"math/rand"
	"strings"
)

// Three-tier hashtag strategy: a few mega-reach tags for discovery, a
// handful of mid-size art community tags, then keyword-matched niche tags
// which convert best. Mega and mid tags are randomly sampled per post so
// captions don't look machine-stamped.

// maxHashtags caps the combined tag set.
const maxHashtags = 28

var megaTags = []string{
	"#art", "#artist", "#artwork", "#painting", "#illustration",
	"#drawing", "#creative", "#design", "#photography", "#nature",
}

var midTags = []string{
	"#digitalart", "#artoftheday", "#artistsoninstagram", "#contemporaryart",
	"#conceptart", "#visualart", "#artgallery", "#fineart", "#instaart",
	"#artstagram", "#artcollective", "#artlovers", "#surrealism",
	"#fantasyart", "#imaginaryworlds",
}

// nicheTags maps prompt keywords to targeted tag sets.
var nicheTags = map[string][]string{
	// Medium / technique
	"watercolour":     {"#watercolour", "#watercolorpainting", "#watercolorart", "#watercolorillustration", "#aquarelle"},
	"watercolor":      {"#watercolor", "#watercolorpainting", "#watercolorart", "#watercolorillustration", "#aquarelle"},
	"oil":             {"#oilpainting", "#oiloncanvas", "#oilpaintings"},
	"acrylic":         {"#acrylicpainting", "#acrylicart", "#acrylicartist", "#acrylicpour"},
	"ink":             {"#inkdrawing", "#inkart", "#penandink", "#inkillustration", "#inkwork"},
	"gouache":         {"#gouache", "#gouacheart", "#gouachepainting", "#gouacheillustration"},
	"charcoal":        {"#charcoaldrawing", "#charcoalart", "#charcoalsketch", "#blackandwhiteart"},
	"pastel":          {"#pastelart", "#pastelpainting", "#softpastel", "#pastelcolors"},
	"etching":         {"#etching", "#printmaking", "#intaglio", "#printmakingartist"},
	"linocut":         {"#linocut", "#printmaking", "#linocutprint", "#blockprint"},
	"impasto":         {"#impasto", "#oilpainting", "#texturedart", "#paletteknife"},

	// Film / photography
	"film":            {"#filmphotography", "#analogphotography", "#filmisnotdead", "#shootfilm", "#35mmfilm"},
	"kodachrome":      {"#kodachrome", "#filmphotography", "#analogphotography", "#filmisnotdead", "#slidefilm"},
	"portra":          {"#kodakportra", "#filmphotography", "#35mm", "#filmisnotdead", "#portra400"},
	"pinhole":         {"#pinholephotography", "#alternativeprocess", "#pinholefilm", "#cameraobscura"},
	"hasselblad":      {"#hasselblad", "#mediumformat", "#filmphotography", "#120film"},
	"long exposure":   {"#longexposure", "#longexposurephotography", "#slowshutter", "#lightpainting"},
	"black and white": {"#blackandwhitephotography", "#blackandwhite", "#bnwphotography", "#monochrome", "#bnw"},

	// Named artists / styles
	"ghibli":     {"#studioghibli", "#ghibliart", "#ghibliaesthetic", "#animeart", "#anime", "#miyazaki"},
	"moebius":    {"#moebius", "#jeanmoebius", "#sciencefictionart", "#graphicnovel", "#comicart"},
	"beksinski":  {"#beksinski", "#darkart", "#surrealpainting", "#darkfantasyart", "#horrorart"},
	"rembrandt":  {"#rembrandt", "#baroque", "#oldmastersart", "#chiaroscuro", "#classicpainting"},
	"vermeer":    {"#vermeer", "#baroque", "#dutchgoldenage", "#classicpainting", "#oldmastersart"},
	"klimt":      {"#klimt", "#artnouveau", "#gustavklimt", "#jugendstil", "#symbolism"},
	"hokusai":    {"#hokusai", "#ukiyoe", "#japanesewoodblock", "#japaneseart", "#woodblockprint"},
	"mucha":      {"#mucha", "#alphonsmucha", "#artnouveau", "#jugendstil", "#decorativeart"},
	"caravaggio": {"#caravaggio", "#baroque", "#chiaroscuro", "#oldmastersart", "#classicpainting"},
	"turner":     {"#jmwturner", "#romanticism", "#landscapepainting", "#britishart", "#atmosphericpainting"},
	"monet":      {"#monet", "#impressionism", "#claudemonet", "#impressionistpainting", "#pleinair"},
	"dali":       {"#dali", "#salvadordali", "#surrealism", "#surrealart", "#dalipainting"},
	"escher":     {"#escher", "#mcescher", "#geometricart", "#impossibleart", "#opticalillusion"},
	"frazetta":   {"#frazetta", "#frankfrazetta", "#fantasyart", "#heroicfantasy", "#fantasypainting"},
	"dore":       {"#gustavedore", "#engraving", "#illustrationart", "#classicillustration"},

	// Periods / movements
	"baroque":       {"#baroque", "#baroqueart", "#oldmastersart", "#classicpainting", "#chiaroscuro"},
	"impressionis":  {"#impressionism", "#impressionistpainting", "#pleinair", "#impressionistart"},
	"art nouveau":   {"#artnouveau", "#jugendstil", "#decorativeart", "#natureinspired", "#organicdesign"},
	"art deco":      {"#artdeco", "#artdecodesign", "#vintageposter", "#geometricart", "#twentiesart"},
	"romanticism":   {"#romanticism", "#romanticpainting", "#19thcenturyart", "#landscapepainting"},
	"symbolis":      {"#symbolism", "#symbolistart", "#mysticalart", "#esotericart"},
	"gothic":        {"#gothicart", "#darkromanticism", "#gothicaesthetic", "#macabreart", "#darkart"},
	"medieval":      {"#medievalart", "#medievalpainting", "#gothicart", "#historicalart", "#illuminatedmanuscript"},
	"illuminated":   {"#illuminatedmanuscript", "#medievalart", "#manuscriptart", "#historicalillustration"},
	"renaissance":   {"#renaissanceart", "#renaissance", "#oldmastersart", "#italianart", "#classicpainting"},
	"pre-raphaelite": {"#preraphaelite", "#preraphaelitebrotherhood", "#classicpainting", "#romanticart"},

	// Subject matter
	"portrait":   {"#portraitpainting", "#portraiture", "#figurativeart", "#portraitart"},
	"landscape":  {"#landscapepainting", "#landscapeart", "#scenery", "#outdoorpainting", "#pleinair"},
	"cityscape":  {"#cityscape", "#cityscapepainting", "#urbanart", "#architectureart", "#cityart"},
	"still life": {"#stilllife", "#stilllifepainting", "#vanitas", "#botanicalart"},
	"abstract":   {"#abstractart", "#abstractpainting", "#abstractexpressionism", "#abstractartist"},

	// Nature / environment
	"forest":    {"#forestpainting", "#woodlandart", "#enchantedforest", "#natureart", "#treeart"},
	"jungle":    {"#jungleart", "#tropicalart", "#rainforest", "#lushfoliage", "#natureart"},
	"ocean":     {"#seascape", "#oceanart", "#marinepainting", "#seascapepainting", "#waveart"},
	"sea":       {"#seascape", "#oceanart", "#marinepainting", "#seascapepainting"},
	"river":     {"#riverpainting", "#waterscape", "#natureart"},
	"waterfall": {"#waterfallpainting", "#natureart", "#waterfallart", "#cascades"},
	"mountain":  {"#mountainpainting", "#mountainscape", "#alpineart", "#mountainart"},
	"desert":    {"#desertart", "#desertlandscape", "#aridlandscape", "#sanddunes"},
	"cave":      {"#caveart", "#undergroundart", "#cavernart"},
	"garden":    {"#gardenart", "#botanicalart", "#gardenpainting"},
	"flower":    {"#floralart", "#botanicalillustration", "#botanicalart", "#flowerpainting"},
	"tree":      {"#treeart", "#treepainting", "#natureart", "#forestpainting"},
	"fog":       {"#atmosphericart", "#foggylandscape", "#moodyphotography", "#mistylandscape"},
	"mist":      {"#atmosphericart", "#mistyphotography", "#moodylandscape", "#mistyforest"},
	"storm":     {"#stormpainting", "#dramaticskies", "#stormscape", "#thunderstorm", "#dramaticart"},
	"snow":      {"#snowscene", "#winterlandscape", "#snowpainting", "#winterart"},
	"night":     {"#nightscene", "#nightphotography", "#nightscape", "#nocturnal", "#nightart"},
	"sunset":    {"#sunsetpainting", "#sunsetart", "#twilight", "#duskphotography"},
	"aurora":    {"#northernlights", "#aurorapainting", "#polarlight"},

	// Architecture / place
	"cathedral":     {"#cathedralart", "#gothicarchitecture", "#sacredart", "#gothicart"},
	"temple":        {"#templeart", "#sacredarchitecture", "#ancientart"},
	"castle":        {"#castleart", "#medievalcastle", "#fortressart", "#historicalarchitecture"},
	"ruin":          {"#ruins", "#abandonedplaces", "#historicalruins", "#ancientruins"},
	"library":       {"#libraryart", "#bookart", "#bibliophile", "#literaryart"},
	"lighthouse":    {"#lighthouseart", "#lighthousepainting", "#coastalart", "#maritimeart"},
	"stained glass": {"#stainedglass", "#stainedglassart", "#sacredart", "#gothicart"},

	// Themes / mood
	"space":     {"#spaceart", "#cosmicart", "#astronomy", "#scifiart", "#sciencefiction"},
	"cosmos":    {"#cosmicart", "#cosmos", "#universe", "#spaceart"},
	"galaxy":    {"#galaxyart", "#nebulaart", "#deepspace", "#spaceart"},
	"star":      {"#stargazing", "#nightsky", "#celestialart", "#starrynight"},
	"moon":      {"#moonart", "#lunarart", "#fullmoon", "#celestialart"},
	"astronaut": {"#astronautart", "#scifiart", "#spaceexploration", "#spaceart", "#futurism"},
	"dragon":    {"#dragonart", "#dragonpainting", "#mythologicalart", "#fantasypainting", "#epicart"},
	"mytholog":  {"#mythologyart", "#mythologicalart", "#classicalmythology", "#epicart"},
	"ancient":   {"#ancientart", "#ancienthistory", "#archaeologyart", "#historicalpainting"},
	"magic":     {"#magicart", "#mysticalart", "#enchanted", "#magicalrealism", "#fantasyart"},
	"light":     {"#chiaroscuro", "#lightandshadow", "#luminismart", "#glowingart"},
	"shadow":    {"#chiaroscuro", "#lightandshadow", "#silhouetteart", "#darkart"},

	// Japanese / Asian
	"japanese": {"#japaneseart", "#japanesepainting", "#asianart", "#japaneseaesthetics"},
	"samurai":  {"#samuraiart", "#bushido", "#japaneseart", "#feudaljapan"},
	"ukiyo":    {"#ukiyoe", "#woodblockprint", "#japanesewoodblock", "#japaneseart"},
	"zen":      {"#zenart", "#zenpainting", "#japaneseart", "#mindfulart"},

	// Sci-fi / futurism
	"cyberpunk":        {"#cyberpunkart", "#cyberpunk", "#futuristicart", "#neonart", "#dystopianart"},
	"steampunk":        {"#steampunkart", "#steampunk", "#victorianfuturism", "#retrofuturism"},
	"futurist":         {"#futurism", "#futuristicart", "#retrofuturism", "#scifiart"},
	"post-apocalyptic": {"#postapocalyptic", "#dystopianart", "#apocalypseart"},
}

// Hashtags builds a tiered hashtag line from the post's text: 3 mega tags,
// 6 mid tags, then keyword-matched niche tags, deduplicated and capped.
func Hashtags(rng *rand.Rand, text string) string {
	lower := strings.ToLower(text)

	var niche []string
	seen := make(map[string]bool)
	for keyword, tags := range nicheTags {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for _, t := range tags {
			if !seen[t] {
				seen[t] = true
				niche = append(niche, t)
			}
		}
	}
	// Map iteration already randomizes keyword order; the shuffle keeps
	// individual tags from clustering by keyword.
	rng.Shuffle(len(niche), func(i, j int) { niche[i], niche[j] = niche[j], niche[i] })

	mega := sample(rng, megaTags, 3)
	var midPool []string
	for _, t := range midTags {
		if !contains(mega, t) {
			midPool = append(midPool, t)
		}
	}
	mid := sample(rng, midPool, 6)

	var combined []string
	picked := make(map[string]bool)
	for _, tag := range concat(mega, mid, niche) {
		if picked[tag] {
			continue
		}
		picked[tag] = true
		combined = append(combined, tag)
		if len(combined) >= maxHashtags {
			break
		}
	}
	return strings.Join(combined, " ")
}

func sample(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	perm := rng.Perm(len(pool))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, pool[i])
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
