package services

var techSkills = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust",
	"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "sass", "less",
	"react", "angular", "vue", "django", "flask", "fastapi", "express", "node.js", "spring",
	"laravel", "rails", "tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"jquery", "bootstrap", "tailwind", "next.js", "nuxt.js", "gatsby", "svelte",
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra", "oracle",
	"sqlite", "dynamodb", "firebase", "neo4j",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "gitlab", "github", "circleci",
	"terraform", "ansible", "vagrant", "nginx", "apache", "linux", "ubuntu", "centos",
	"git", "jira", "confluence", "slack", "figma", "sketch", "photoshop", "illustrator",
	"postman", "swagger", "rest", "graphql", "microservices", "api", "json", "xml",
	"agile", "scrum", "kanban", "ci/cd", "tdd", "bdd",
	"tableau", "power-bi", "looker", "spark", "hadoop", "kafka", "airflow", "jupyter",
	"machine-learning", "deep-learning", "data-science", "big-data", "etl", "data-warehouse",
	"ios", "android", "react-native", "flutter", "xamarin", "cordova", "ionic",
	"cybersecurity", "penetration-testing", "vulnerability-assessment", "encryption",
	"oauth", "jwt", "ssl", "tls", "firewall", "vpn",
}

var softSkills = []string{
	"leadership", "communication", "teamwork", "problem-solving", "critical-thinking",
	"creativity", "adaptability", "time-management", "organization", "collaboration",
	"project-management", "analytical", "detail-oriented", "self-motivated", "initiative",
	"multitasking", "decision-making", "interpersonal", "presentation", "negotiation",
	"customer-service", "mentoring", "coaching", "strategic-thinking", "innovation",
}

// englishStopWords is the stop-word list applied to TF-IDF tokens and to
// frequent-term extraction.
var englishStopWords = []string{
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
	"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "an",
	"and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around",
	"as", "at", "be", "became", "because", "become", "becomes", "becoming", "been", "before",
	"beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "both", "but",
	"by", "can", "cannot", "could", "do", "does", "done", "down", "due", "during",
	"each", "eg", "either", "else", "elsewhere", "enough", "etc", "even", "ever", "every",
	"everyone", "everything", "everywhere", "except", "few", "for", "former", "formerly", "from", "further",
	"get", "give", "go", "had", "has", "have", "he", "hence", "her", "here",
	"hereafter", "hereby", "herein", "hers", "herself", "him", "himself", "his", "how", "however",
	"i", "ie", "if", "in", "indeed", "into", "is", "it", "its", "itself",
	"just", "keep", "last", "latter", "least", "less", "made", "many", "may", "me",
	"meanwhile", "might", "mine", "more", "moreover", "most", "mostly", "much", "must", "my",
	"myself", "namely", "neither", "never", "nevertheless", "next", "no", "nobody", "none", "nor",
	"not", "nothing", "now", "nowhere", "of", "off", "often", "on", "once", "one",
	"only", "onto", "or", "other", "others", "otherwise", "our", "ours", "ourselves", "out",
	"over", "own", "part", "per", "perhaps", "please", "put", "rather", "re", "same",
	"see", "seem", "seemed", "seeming", "seems", "several", "she", "should", "since", "so",
	"some", "somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still", "such", "than",
	"that", "the", "their", "them", "themselves", "then", "thence", "there", "thereafter", "thereby",
	"therefore", "therein", "thereupon", "these", "they", "this", "those", "though", "through", "throughout",
	"thus", "to", "together", "too", "toward", "towards", "under", "until", "up", "upon",
	"us", "very", "via", "was", "we", "well", "were", "what", "whatever", "when",
	"whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein", "whereupon", "wherever", "whether",
	"which", "while", "whither", "who", "whoever", "whole", "whom", "whose", "why", "will",
	"with", "within", "without", "would", "yet", "you", "your", "yours", "yourself", "yourselves",
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
