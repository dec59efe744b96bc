package signal

import (
	"regexp"
	"strconv"
	"strings"
)

const resource = `(?:bricks?|gems?|recruits?)`

// Effect text may carry any Unicode whitespace or decimal digit, so \s and \d
// are widened before compiling.
var unicodeClasses = strings.NewReplacer(
	`\s`, `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`,
	`\d`, `\p{Nd}`,
)

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(unicodeClasses.Replace(pattern))
}

var (
	reWallGain       = compile(`\+(\d+)\s*wall`)
	reTowerGain      = compile(`\+(\d+)\s*tower`)
	reQuarryGain     = compile(`\+(\d+)\s*quarry`)
	reMagicGain      = compile(`\+(\d+)\s*magic`)
	reDungeonGain    = compile(`\+(\d+)\s*dungeon`)
	reResourcePlus   = compile(`\+(\d+)\s*(?:bricks?|gems?|recruits?|gem)`)
	reYouGain        = compile(`you gain (\d+)\s*` + resource)
	reGain           = compile(`gain (\d+)\s*` + resource)
	reDraw           = compile(`draw \d+ card`)
	reDiscard        = compile(`discard \d+ card`)
	reYouLose        = compile(`you lose (\d+)\s*` + resource)
	reLose           = compile(`lose (\d+)\s*` + resource)
	reQuarryLoss     = compile(`-(\d+)\s*quarry`)
	reMagicLoss      = compile(`-(\d+)\s*magic`)
	reWallLoss       = compile(`-(\d+)\s*wall`)
	reTowerHit       = compile(`(\d+)\s*damage to (?:enemy |all )?tower`)
	reEnemyHit       = compile(`(\d+)\s*damage to enemy`)
	reAllEnemyTowers = compile(`(\d+)\s*damage to all enemy towers?`)
	reBareDamage     = compile(`(\d+)\s*damage`)
	reSelfDamage     = compile(`(?:you take|tower takes?)\s*(\d+)\s*damage`)
	reEnemyLose      = compile(`enemy loses? (\d+)\s*` + resource)
	reEnemyProdLoss  = compile(`-(\d+)\s*enemy\s*(?:quarry|dungeon)|enemy\s+loses?\s+(\d+)\s*(?:quarry|dungeon)`)
	reAllLose        = compile(`all players? (?:lose|loses) (\d+)\s*` + resource)
	reAllQuarryDown  = compile(`all player.{0,5}quarry.{0,5}-1|-1 to all player.{0,5}quarr`)
	reAllDungeonUp   = compile(`\+1 to all player.{0,10}dungeon`)
	reAllQuarryUp    = compile(`\+1 to all player.{0,10}quarry`)
	reAllTowers      = compile(`(\d+)\s*damage to all tower`)
	reBranchDamage   = compile(`if.+?(\d+)\s*damage.+?else\s*(\d+)\s*damage`)
)

// rule inspects lower-cased effect text and accumulates into m.
type rule func(e string, m Map)

// rules run in order; later rules may overwrite what earlier ones accumulated.
var rules = []rule{
	ownGains,
	resourceGains,
	tempo,
	ownResourceLoss,
	ownProductionLoss,
	ownWallLoss,
	enemyDamage,
	bareDamage,
	selfDamage,
	enemyResourceLoss,
	enemyProductionLoss,
	allPlayers,
	allTowers,
	branchDamage,
	quarryEqualize,
}

// Extract parses one effect text into a signal map. Matching ignores case.
// Text without any recognised pattern yields an empty map.
func Extract(effect string) Map {
	e := lower(effect)
	m := NewMap()
	for _, r := range rules {
		r(e, m)
	}
	return m
}

func ownGains(e string, m Map) {
	sumInto(m, Wall, e, reWallGain, 1, nil)
	sumInto(m, Tower, e, reTowerGain, 1, nil)
	sumInto(m, ProductionOwn, e, reQuarryGain, 1, nil)
	sumInto(m, ProductionOwn, e, reMagicGain, 1, nil)
	sumInto(m, ProductionOwn, e, reDungeonGain, 1, nil)
}

// resourceGains lets the three phrasings overlap: "you gain 3 gems" counts for
// both the "you gain" and the bare "gain" pattern.
func resourceGains(e string, m Map) {
	sumInto(m, ResourceGain, e, reResourcePlus, 1, nil)
	sumInto(m, ResourceGain, e, reYouGain, 1, nil)
	sumInto(m, ResourceGain, e, reGain, 1, func(start, _ int) bool {
		return !wordBefore(e, start)
	})
}

func tempo(e string, m Map) {
	if strings.Contains(e, "play again") {
		m.Set(PlayAgain, 1)
	}
	if reDraw.MatchString(e) || reDiscard.MatchString(e) {
		m.Set(DrawDiscard, 1)
	}
}

func ownResourceLoss(e string, m Map) {
	sumInto(m, ResourceLose, e, reYouLose, -1, nil)
	sumInto(m, ResourceLose, e, reLose, -1, func(start, _ int) bool {
		if lowerBefore(e, start) {
			return false
		}
		pre := before(e, start, 20)
		return !strings.Contains(pre, "enemy") &&
			!strings.Contains(pre, "all player") &&
			!strings.Contains(pre, "you")
	})
}

func ownProductionLoss(e string, m Map) {
	sumInto(m, ProductionEnemy, e, reQuarryLoss, -1, func(start, end int) bool {
		rest := e[end:]
		if strings.HasPrefix(rest, " of ") || strings.HasPrefix(rest, " enemy") {
			return false
		}
		return !strings.Contains(window(e, start, end, 10), "enemy")
	})
	sumInto(m, ProductionEnemy, e, reMagicLoss, -1, func(start, end int) bool {
		rest := trimSpace(e[end:])
		if strings.HasPrefix(rest, ">") || strings.HasPrefix(rest, "=") {
			return false
		}
		ctx := window(e, start, end, 10)
		return !strings.Contains(ctx, "enemy") && !strings.Contains(ctx, "all")
	})
}

func ownWallLoss(e string, m Map) {
	sumInto(m, Wall, e, reWallLoss, -1, func(start, end int) bool {
		return !strings.Contains(window(e, start, end, 10), "enemy")
	})
}

func enemyDamage(e string, m Map) {
	sumInto(m, TowerDamage, e, reTowerHit, 1, nil)
	sumInto(m, Damage, e, reEnemyHit, 1, func(_, end int) bool {
		return !strings.HasPrefix(trimSpace(e[end:]), "tower")
	})
	sumInto(m, TowerDamage, e, reAllEnemyTowers, 1, nil)
}

// bareDamage scores "N damage" that is not aimed with "to". Who takes it is
// decided by the text just in front of the number.
func bareDamage(e string, m Map) {
	for _, loc := range reBareDamage.FindAllStringSubmatchIndex(e, -1) {
		if followedByTo(e[loc[1]:]) {
			continue
		}
		n := atoi(e[loc[2]:loc[3]])
		pre := before(e, loc[0], 20)
		switch {
		case strings.Contains(pre, "your tower take") || strings.Contains(pre, "tower take"):
			m.Add(TowerDamageSelf, -n)
		case strings.Contains(pre, "you take") || strings.Contains(before(e, loc[0], 10), "you take"):
			m.Add(TowerDamageSelf, -n)
		default:
			m.Add(Damage, n)
		}
	}
}

// selfDamage overlaps with bareDamage, so explicit self damage counts twice.
func selfDamage(e string, m Map) {
	sumInto(m, TowerDamageSelf, e, reSelfDamage, -1, nil)
}

func enemyResourceLoss(e string, m Map) {
	sumInto(m, ResourceEnemyLose, e, reEnemyLose, 1, nil)
}

func enemyProductionLoss(e string, m Map) {
	seen := make(map[int]bool)
	for _, loc := range reEnemyProdLoss.FindAllStringSubmatchIndex(e, -1) {
		if seen[loc[0]] {
			continue
		}
		seen[loc[0]] = true
		var n float64
		if loc[2] >= 0 {
			n = atoi(e[loc[2]:loc[3]])
		} else {
			n = atoi(e[loc[4]:loc[5]])
		}
		m.Add(ProductionEnemyDe, n)
	}
}

// allPlayers values symmetric effects from our side: our loss at full weight,
// the opponent's at theirs.
func allPlayers(e string, m Map) {
	for _, loc := range reAllLose.FindAllStringSubmatchIndex(e, -1) {
		n := atoi(e[loc[2]:loc[3]])
		m.Add(ResourceLose, -n)
		m.Add(ResourceEnemyLose, n)
	}
	if reAllQuarryDown.MatchString(e) {
		m.Add(ProductionEnemy, -1)
		m.Add(ProductionEnemyDe, 1)
	}
	if reAllDungeonUp.MatchString(e) {
		m.Add(ProductionOwn, 1)
		m.Add(ProductionEnemyDe, -1)
	}
	if reAllQuarryUp.MatchString(e) {
		m.Add(ProductionOwn, 1)
		m.Add(ProductionEnemyDe, -1)
	}
}

func allTowers(e string, m Map) {
	for _, loc := range reAllTowers.FindAllStringSubmatchIndex(e, -1) {
		n := atoi(e[loc[2]:loc[3]])
		m.Add(Damage, n)
		m.Add(TowerDamageSelf, -n)
	}
}

// branchDamage replaces the summed damage of "if ... N damage ... else M damage"
// with the mean of both branches.
func branchDamage(e string, m Map) {
	sub := reBranchDamage.FindStringSubmatch(e)
	if sub == nil {
		return
	}
	m.Set(Damage, (atoi(sub[1])+atoi(sub[2]))/2)
}

// quarryEqualize approximates "quarry = enemy quarry" by its expected gain.
func quarryEqualize(e string, m Map) {
	if strings.Contains(e, "quarry = enemy quarry") {
		m.Add(ProductionOwn, 1.5)
	}
}

// sumInto adds sign*N into c for every match of re whose first group is N.
// keep, when set, filters matches by their byte span.
func sumInto(m Map, c Category, e string, re *regexp.Regexp, sign float64, keep func(start, end int) bool) {
	for _, loc := range re.FindAllStringSubmatchIndex(e, -1) {
		if keep != nil && !keep(loc[0], loc[1]) {
			continue
		}
		m.Add(c, sign*atoi(e[loc[2]:loc[3]]))
	}
}

// atoi converts a run of decimal digits of any script. Values beyond the int
// range stay large instead of wrapping.
func atoi(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		b.WriteByte(byte('0' + digitValue(r)))
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}
