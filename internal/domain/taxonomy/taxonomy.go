// Package taxonomy holds the static domain→keyword expansion table that both
// ranking pipelines are built on. The table is compiled in, indexed once at
// package load, and exposed only through read-only lookups, so it is safe for
// unlimited concurrent readers.
package taxonomy

import (
	"sort"
	"strings"
)

// table maps each top-level domain tag to its related keywords. All entries
// are lower-case; lookups normalize input the same way.
var table = map[string][]string{
	"web": {
		"html", "html5", "css", "css3", "javascript", "js", "es6", "typescript", "ts",
		"react", "reactjs", "vue", "vuejs", "angular", "svelte", "nextjs", "nuxtjs",
		"tailwind", "bootstrap", "material ui",
		"node", "nodejs", "express", "django", "flask", "fastapi", "spring boot",
		"laravel", "php", "ruby on rails",
		"frontend", "backend", "fullstack", "api", "rest", "graphql", "websockets",
		"pwa", "npm", "yarn", "webpack",
	},
	"game": {
		"unity", "unreal engine", "unreal", "godot", "gamemaker", "cryengine",
		"c#", "c++", "lua", "blueprint",
		"gamedev", "level design", "shaders", "vfx", "physics", "rendering",
		"3d modeling", "blender", "maya",
		"sprite", "animation", "multiplayer", "npc", "navmesh", "raytracing",
		"opengl", "vulkan", "directx",
	},
	"ai": {
		"artificial intelligence", "ml", "machine learning", "dl", "deep learning",
		"neural networks",
		"tensorflow", "pytorch", "keras", "scikit-learn", "sklearn", "pandas",
		"numpy", "opencv", "huggingface",
		"nlp", "computer vision", "reinforcement learning", "gan", "llm", "gpt",
		"transformer", "bert", "diffusion models",
		"chatbot", "predictive", "data science", "algorithm", "model training",
		"dataset", "supervised", "unsupervised",
	},
	"cybersecurity": {
		"hacking", "ethical hacking", "penetration testing", "pentest", "red team",
		"blue team", "soc", "ciso",
		"firewall", "vpn", "network security", "wireshark", "nmap", "packet tracer",
		"tcp/ip", "dns",
		"crypto", "cryptography", "encryption", "malware", "ransomware", "phishing",
		"social engineering", "exploit",
		"vulnerability", "bug bounty", "owasp", "kali linux", "metasploit",
		"zero day", "auth", "oauth", "jwt",
	},
	"cloud": {
		"aws", "amazon web services", "azure", "gcp", "google cloud", "digitalocean",
		"heroku", "vercel", "netlify",
		"docker", "kubernetes", "k8s", "container", "podman",
		"devops", "ci/cd", "pipeline", "serverless", "lambda", "microservices",
		"terraform", "ansible", "jenkins",
		"linux", "bash", "shell", "scalability", "load balancing", "cdn", "s3", "ec2",
	},
	"dsa": {
		"array", "linked list", "stack", "queue", "hash map", "hash table", "tree",
		"binary tree", "bst", "heap", "graph", "trie",
		"sorting", "searching", "recursion", "dynamic programming", "dp", "greedy",
		"backtracking", "divide and conquer",
		"leetcode", "codeforces", "hackerrank", "competitive programming", "cp",
		"big o", "time complexity", "space complexity",
		"binary search", "dfs", "bfs", "dijkstra", "prim", "kruskal",
		"interview prep", "coding interview",
	},
	"app": {
		"mobile", "ios", "android", "flutter", "react native", "swift", "kotlin",
	},
}

// keywordSets is table with keywords indexed as sets for O(1) membership.
var keywordSets = buildKeywordSets()

// keywordDomains is the reverse index: keyword → domains that list it.
var keywordDomains = buildReverseIndex()

func buildKeywordSets() map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{}, len(table))
	for domain, kws := range table {
		set := make(map[string]struct{}, len(kws))
		for _, kw := range kws {
			set[kw] = struct{}{}
		}
		sets[domain] = set
	}
	return sets
}

func buildReverseIndex() map[string][]string {
	rev := make(map[string][]string)
	for domain, kws := range table {
		for _, kw := range kws {
			rev[kw] = append(rev[kw], domain)
		}
	}
	for _, domains := range rev {
		sort.Strings(domains)
	}
	return rev
}

// Normalize lower-cases and trims a tag the way every taxonomy lookup does.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// IsDomain reports whether the normalized tag is a top-level domain.
func IsDomain(tag string) bool {
	_, ok := keywordSets[Normalize(tag)]
	return ok
}

// Domains returns the sorted list of top-level domain tags.
func Domains() []string {
	out := make([]string, 0, len(table))
	for d := range table {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Expand returns a sorted copy of the keywords for the normalized domain tag,
// or nil if the tag is not a recognized domain. Unknown tags are not an error:
// they simply contribute nothing beyond the literal term itself.
func Expand(domainTag string) []string {
	kws, ok := table[Normalize(domainTag)]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	sort.Strings(out)
	return out
}

// DomainsContaining returns every top-level domain whose keyword set contains
// the normalized term. This is what lets a query for a specific skill such as
// "react" also activate its parent domain "web".
func DomainsContaining(keyword string) []string {
	domains, ok := keywordDomains[Normalize(keyword)]
	if !ok {
		return nil
	}
	out := make([]string, len(domains))
	copy(out, domains)
	return out
}

// ExpandQuery expands raw query terms bidirectionally for partner search.
// Each term contributes itself; a domain term contributes its keywords; a
// keyword term contributes its parent domains.
func ExpandQuery(terms []string) map[string]struct{} {
	expanded := make(map[string]struct{})
	for _, term := range terms {
		clean := Normalize(term)
		if clean == "" {
			continue
		}
		expanded[clean] = struct{}{}

		if set, ok := keywordSets[clean]; ok {
			for kw := range set {
				expanded[kw] = struct{}{}
			}
		}
		for _, domain := range keywordDomains[clean] {
			expanded[domain] = struct{}{}
		}
	}
	return expanded
}

// ExpandDomains expands declared domain tags forward-only for post matching.
// Unlike ExpandQuery it never walks keyword→domain: declared domains are
// categories, not skills, and the two call sites intentionally differ.
func ExpandDomains(domains []string) map[string]struct{} {
	expanded := make(map[string]struct{})
	for _, domain := range domains {
		clean := Normalize(domain)
		if clean == "" {
			continue
		}
		expanded[clean] = struct{}{}

		if set, ok := keywordSets[clean]; ok {
			for kw := range set {
				expanded[kw] = struct{}{}
			}
		}
	}
	return expanded
}
