package utils

// English stop words. Words that double as technology names (go, less,
// rest, system) are left out so they stay matchable.
var stopWords = toSet(
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
	"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "an",
	"and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around",
	"as", "at", "back", "be", "became", "because", "become", "becomes", "becoming", "been",
	"before", "beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "both",
	"bottom", "but", "by", "can", "cannot", "cant", "could", "couldnt", "do", "does",
	"done", "down", "due", "during", "each", "eg", "eight", "either", "eleven", "else",
	"elsewhere", "enough", "etc", "even", "ever", "every", "everyone", "everything", "everywhere", "except",
	"few", "fifteen", "fifty", "first", "five", "for", "former", "formerly", "forty", "four",
	"from", "further", "had", "has", "hasnt", "have", "he", "hence", "her", "here",
	"hereafter", "hereby", "herein", "hereupon", "hers", "herself", "him", "himself", "his", "how",
	"however", "hundred", "i", "ie", "if", "in", "inc", "indeed", "into", "is",
	"it", "its", "itself", "last", "latter", "latterly", "least", "ltd", "many", "may",
	"me", "meanwhile", "might", "mine", "more", "moreover", "most", "mostly", "much", "must",
	"my", "myself", "namely", "neither", "never", "nevertheless", "next", "nine", "no", "nobody",
	"none", "noone", "nor", "not", "nothing", "now", "nowhere", "of", "off", "often",
	"on", "once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
	"ours", "ourselves", "out", "over", "own", "per", "perhaps", "please", "rather", "re",
	"same", "seem", "seemed", "seeming", "seems", "several", "she", "should", "since", "six",
	"sixty", "so", "some", "somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still",
	"such", "ten", "than", "that", "the", "their", "them", "themselves", "then", "thence",
	"there", "thereafter", "thereby", "therefore", "therein", "thereupon", "these", "they", "third", "this",
	"those", "though", "three", "through", "throughout", "thru", "thus", "to", "together", "too",
	"toward", "towards", "twelve", "twenty", "two", "un", "under", "until", "up", "upon",
	"us", "very", "via", "was", "we", "well", "were", "what", "whatever", "when",
	"whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein", "whereupon", "wherever", "whether",
	"which", "while", "whither", "who", "whoever", "whole", "whom", "whose", "why", "will",
	"with", "within", "without", "would", "yet", "you", "your", "yours", "yourself", "yourselves",
)

// IsStopWord reports whether word is an English stop word. word must be lowercase.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
