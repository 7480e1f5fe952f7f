// Package lexicon holds the fixed prompt-component catalogs.
//
// Each slot (subject, style, ...) maps to an ordered list of distinct text
// values. The catalogs are static data, loaded once and never mutated;
// values are opaque tokens matched by exact equality everywhere else in the
// system (history keys, engagement attribution, weight lookup).
package lexicon

// Slot names used as keys in variant components, sidecar metadata and the
// engagement ledger. These strings are persisted; do not rename.
const (
	SlotSubject     = "subject"
	SlotEnvironment = "environment"
	SlotStyle       = "style"
	SlotMood        = "mood"
	SlotPalette     = "palette"
	SlotCloser      = "closer"
)

// Subjects are the base scene ideas, loosely grouped by theme.
var Subjects = []string{
	// Architectural / structural
	"an ancient lighthouse assembled from crystallised memories",
	"a cathedral sculpted entirely from frozen ocean waves",
	"a clockwork forest where every tree displays a different era",
	"a city suspended inside an enormous soap bubble over the void",
	"a vast library whose books drift like paper lanterns in still air",
	"a mechanical garden where iron flowers bloom only at midnight",
	"a staircase of glowing marble that spirals up into deep space",
	"a train station perched at the absolute edge of the known world",
	"a tower built from the fossilised bones of dead languages",
	"a bridge constructed from the interlocked silhouettes of dancers",
	"a monastery carved directly into the face of a thunderstorm",
	"a coral reef flowering through the skeletal ruins of a skyscraper",
	"a crumbling opera house slowly being swallowed by an ancient forest",
	"a cathedral made entirely of stacked hourglasses, each one running",
	"a vast greenhouse on a frozen planet, lit from within like a lantern",
	"an observatory whose telescope points inward instead of outward",
	// Figures / characters
	"a musician whose instrument releases clouds of coloured sound",
	"a painter whose every brushstroke becomes a living creature",
	"a clockmaker who repairs broken moments stolen from time itself",
	"a child who discovers a hidden door inside the cast shadow of a tree",
	"a scholar translating manuscripts written in light on cave walls",
	"a child chasing fireflies through the corridors of a palace of mirrors",
	"a samurai guarding the entrance to a portal made of cascading water",
	"a lone astronaut discovering a blooming greenhouse on a dead moon",
	"a giant sleeping under a hill, wildflowers growing from their hair",
	"an old cartographer drawing maps of places that do not exist yet",
	"a diver descending into a sea made entirely of liquid amber",
	"a weaver whose tapestry depicts the future as it is happening",
	"a street musician playing a song that makes memories visible",
	"a woman standing at the threshold of a door made of moving water",
	"a lighthouse keeper whose light guides ships between dimensions",
	// Creatures / nature
	"a luna moth the size of a city hovering over candlelit streets",
	"a colossal whale drifting through the clouds above a medieval city",
	"a phoenix being reborn from the smouldering ashes of a library",
	"a forest in which every shadow has a life entirely its own",
	"a desert made entirely of shattered antique mirrors",
	"a river of liquid starlight flowing uphill through stone channels",
	"an island that materialises only during total solar eclipses",
	"twin moons casting double shadows over an alien salt flat",
	"a flock of paper cranes migrating across a winter sky at dusk",
	"a forest of bioluminescent trees reflected in a perfectly still lake",
	"a meadow where every flower is a different extinct species",
	"a black fox with a tail made of northern lights crossing a frozen lake",
	// Market / social scenes
	"a bazaar where merchants sell bottled human emotions",
	"a marketplace where dreamers trade memories for new nightmares",
	"an underwater concert hall packed with singing deep-sea creatures",
	"an orchestra playing silently inside the eye of a hurricane",
	"a chess game played on a board the size of a continent by giants",
	"a carnival at the end of the universe, lit by dying stars",
	"a night market where every stall sells a different kind of silence",
	// Abandoned / post-natural
	"an abandoned generation ship consumed by bioluminescent moss",
	"a sunken cathedral glimpsed through fathoms of glowing green water",
	"a city reclaimed by vines and flowering trees after centuries of silence",
	"the ruins of a space station wrapped in morning glory and moss",
}

var Environments = []string{
	"bathed in the violet light of three simultaneous moons",
	"ringed by storm clouds crackling with chains of golden lightning",
	"emerging from dense, slow-moving fog at the edge of reality",
	"surrounded by millions of glowing fireflies frozen mid-flight",
	"reflected infinitely in a surface of still, perfectly black water",
	"half-reclaimed by encroaching jungle, lianas crawling everywhere",
	"at the precise moment of a blazing sunrise over an alien horizon",
	"frozen mid-collapse, every grain of dust suspended in raking light",
	"glimpsed through a curtain of falling cherry blossoms",
	"under a sky filled with enormous floating crystalline formations",
	"dissolving at the edges into cascades of geometric copper particles",
	"at the impossible border between a snowfield and a red desert",
	"submerged under a shallow layer of perfectly transparent water",
	"consumed by glowing bioluminescent vines at the last moment of dusk",
	"at the centre of a vast natural amphitheatre of wind-carved red stone",
	"surrounded by the remnants of an ancient bonfire, still faintly glowing",
	"at the edge of a sheer cliff overlooking an ocean of slow clouds",
	"inside a narrow canyon where the rock strata glow with mineral colour",
	"at the hour when daylight and darkness are perfectly balanced",
	"seen through rain-streaked glass, the outside world blurred and soft",
	"in the long blue shadow of a glacier at the end of summer",
	"lit from below by the glow of something vast and unseen beneath",
	"surrounded by a circle of ancient standing stones at the winter solstice",
	"at the point where a river disappears underground into total darkness",
	"caught in the moment before a storm breaks, the air charged and still",
}

var Styles = []string{
	// Painting traditions
	"in the style of a Studio Ghibli background painting, lush and atmospheric",
	"painted in heavy impasto oils with Baroque chiaroscuro and deep shadows",
	"rendered as a loose, luminous plein-air oil sketch",
	"in the style of the Hudson River School, vast and romantically lit",
	"painted in the manner of Caspar David Friedrich, solitary and sublime",
	"illustrated with the delicate watercolour washes of Arthur Rackham",
	"painted as a lush Pre-Raphaelite oil, jewel-toned and botanically precise",
	"in the nightmarish surrealist oil style of Beksinski, raw and haunting",
	"rendered as a richly layered Symbolist painting from the 1890s",
	"in the style of an N.C. Wyeth adventure illustration, dramatic and heroic",
	"painted as a Japanese nihonga on silk, gold leaf accents and soft gradients",
	// Print and illustration
	"composed as a hyperdetailed Gustave Dore steel engraving",
	"created in the exact ligne claire style of Jean Giraud (Moebius)",
	"illustrated as a luminous Art Nouveau poster by Alphonse Mucha",
	"depicted as a bold Soviet Constructivist propaganda lithograph",
	"rendered as a hand-pulled Japanese woodblock print, flat and graphic",
	"illustrated as a vintage 1970s science fiction paperback cover",
	"depicted as a hand-lettered psychedelic 1967 concert poster",
	"drawn in precise cross-hatched ink in the tradition of Albrecht Durer",
	"illustrated as a full-page Victorian natural history plate",
	"depicted as a hand-screen-printed two-colour risograph illustration",
	// Photography
	"shot on large-format film, rich tonal range and deep focus",
	"photographed on Kodachrome slide film, saturated and grain-heavy",
	"captured on medium-format black-and-white film with wide dynamic range",
	"shot on expired 35mm Portra film, soft colours and organic grain",
	"photographed with a long exposure at blue hour, light trails and stillness",
	"captured with a vintage Hasselblad on Tri-X pushed to 3200 ISO",
	"taken with a pinhole camera, soft and dreamlike with extreme depth of field",
	// Mixed / craft
	"rendered as a hand-painted theatrical backdrop from a 1920s opera",
	"illustrated as a richly detailed medieval illuminated manuscript",
	"depicted as a stained-glass window in the High Gothic tradition",
	"designed as a bold Art Deco travel poster from the 1930s",
}

var Moods = []string{
	"evoking profound melancholy and quiet, aching beauty",
	"radiating a sense of ancient, utterly forgotten wonder",
	"filled with electric tension just before a great transformation",
	"exuding warmth, safety, and last-light nostalgia",
	"charged with eerie cosmic dread and awe at infinite scale",
	"bursting with joyful, barely-contained chaos and colour",
	"heavy with the accumulated weight of lost civilisations",
	"alive with spiritual transcendence and inner light",
	"wrapped in mystery, secrets barely visible at the very edges",
	"serene yet subtly unsettling, like a half-remembered dream",
	"suffused with a bittersweet longing for something just out of reach",
	"humming with quiet magic, as if the world is holding its breath",
	"carrying the stillness and gravity of a place struck by lightning",
	"dreamlike and soft, like a memory seen through frosted glass",
	"raw and honest, stripped of sentimentality, deeply human",
}

var Palettes = []string{
	"palette of deep indigo, burnt sienna, and pale gold",
	"muted palette of sage green, terracotta, and off-white",
	"high-contrast palette of pure black, crimson, and silver",
	"warm palette of amber, rust, and candlelight yellow",
	"cold palette of steel blue, grey-violet, and white",
	"earthy palette of ochre, umber, and dusty rose",
	"rich palette of emerald, midnight blue, and aged bronze",
	"washed-out palette of faded lavender, cream, and moss",
	"dramatic palette of charcoal, electric teal, and copper",
	"tender palette of blush, ivory, and pale celadon green",
	"stark palette of Payne's grey, raw umber, and chalk white",
	"jewel palette of deep burgundy, forest green, and old gold",
}

// Closers are quality sentences appended to every prompt. Kept free of
// generic AI buzzwords on purpose.
var Closers = []string{
	"Fine detail throughout, strong sense of depth and atmosphere.",
	"Confident brushwork, rich surface texture, compelling composition.",
	"Precise linework, balanced tonal values, arresting focal point.",
	"Loose gestural marks, luminous light, cohesive visual language.",
	"Meticulous rendering, expressive use of shadow, timeless feel.",
	"Bold shapes, layered colour, striking negative space.",
	"Intimate scale, careful observation, quiet emotional weight.",
	"Sweeping composition, dramatic contrast, immersive atmosphere.",
}

// All returns every slot catalog keyed by slot name.
func All() map[string][]string {
	return map[string][]string{
		SlotSubject:     Subjects,
		SlotEnvironment: Environments,
		SlotStyle:       Styles,
		SlotMood:        Moods,
		SlotPalette:     Palettes,
		SlotCloser:      Closers,
	}
}
