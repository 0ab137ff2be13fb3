package entities

// ClonedRepoState is the negotiation state of one local clone.
type ClonedRepoState struct {
	Active   Credential
	Rejected CredentialSet
}

// NewClonedRepoState starts a clone state with nothing rejected yet.
func NewClonedRepoState(active Credential) *ClonedRepoState {
	return &ClonedRepoState{Active: active, Rejected: NewCredentialSet()}
}

// RejectActive moves the active credential into the rejected set.
func (it *ClonedRepoState) RejectActive() {
	if it.Rejected == nil {
		it.Rejected = NewCredentialSet()
	}
	it.Rejected.Add(it.Active)
}

// orderedMap remembers the order keys were first inserted in.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{values: make(map[K]V)}
}

func (it *orderedMap[K, V]) get(key K) (V, bool) {
	value, ok := it.values[key]
	return value, ok
}

func (it *orderedMap[K, V]) set(key K, value V) {
	if _, ok := it.values[key]; !ok {
		it.keys = append(it.keys, key)
	}
	it.values[key] = value
}

// getOrCreate returns the value under key, inserting the result of create when missing.
func (it *orderedMap[K, V]) getOrCreate(key K, create func() V) V {
	if value, ok := it.values[key]; ok {
		return value
	}
	value := create()
	it.set(key, value)
	return value
}

func (it *orderedMap[K, V]) each(fn func(K, V) bool) {
	for _, key := range it.keys {
		if !fn(key, it.values[key]) {
			return
		}
	}
}

func (it *orderedMap[K, V]) len() int {
	return len(it.keys)
}

type (
	clonePaths    = orderedMap[string, *ClonedRepoState]
	repositories  = orderedMap[string, *clonePaths]
	organizations = orderedMap[string, *repositories]
)

// CredentialGraph indexes clone states by identity key, organization,
// repository name and clone path. Every level keeps insertion order, which is
// also the order the resolver searches in. Nodes are never removed.
type CredentialGraph struct {
	identities *orderedMap[string, *organizations]
}

// NewCredentialGraph creates an empty graph.
func NewCredentialGraph() *CredentialGraph {
	return &CredentialGraph{identities: newOrderedMap[string, *organizations]()}
}

// EnsureNode creates the identity, organization and repository levels if missing.
func (it *CredentialGraph) EnsureNode(identity RepositoryIdentity) {
	it.repositoryNode(identity)
}

// Lookup returns the state stored for a clone path of the identity.
func (it *CredentialGraph) Lookup(identity RepositoryIdentity, clonePath string) (*ClonedRepoState, bool) {
	orgs, ok := it.identities.get(identity.Key())
	if !ok {
		return nil, false
	}
	repos, ok := orgs.get(identity.Organization)
	if !ok {
		return nil, false
	}
	paths, ok := repos.get(identity.Name)
	if !ok {
		return nil, false
	}
	return paths.get(clonePath)
}

// Insert stores or replaces the state of a clone path, creating missing levels.
func (it *CredentialGraph) Insert(identity RepositoryIdentity, clonePath string, state *ClonedRepoState) {
	it.repositoryNode(identity).set(clonePath, state)
}

// Len is the number of clone states in the graph.
func (it *CredentialGraph) Len() int {
	total := 0
	it.identities.each(func(_ string, orgs *organizations) bool {
		orgs.each(func(_ string, repos *repositories) bool {
			repos.each(func(_ string, paths *clonePaths) bool {
				total += paths.len()
				return true
			})
			return true
		})
		return true
	})
	return total
}

// FindReusable searches for an active credential of the wanted kind that some
// other clone already uses, widening the scope as far as the policy allows:
// clones of the same repository, then the organization, then the whole identity.
// The clone at excludeClonePath and every credential in exclude are skipped.
func (it *CredentialGraph) FindReusable(
	policy SharePolicy,
	identity RepositoryIdentity,
	excludeClonePath string,
	exclude CredentialSet,
	kind CredentialKind,
) (Credential, bool) {
	if policy < ShareDuplicate {
		return Credential{}, false
	}

	orgs, ok := it.identities.get(identity.Key())
	if !ok {
		return Credential{}, false
	}
	repos, ok := orgs.get(identity.Organization)
	if !ok {
		return Credential{}, false
	}

	matches := func(clonePath string, state *ClonedRepoState) bool {
		return clonePath != excludeClonePath &&
			state.Active.Kind == kind &&
			!exclude.Contains(state.Active)
	}

	if paths, found := repos.get(identity.Name); found {
		if credential, hit := firstMatch(paths, matches); hit {
			return credential, true
		}
	}

	if policy < ShareOrganization {
		return Credential{}, false
	}
	if credential, hit := searchRepositories(repos, identity.Name, matches); hit {
		return credential, true
	}

	if policy < ShareIdentity {
		return Credential{}, false
	}
	var (
		found      Credential
		foundMatch bool
	)
	orgs.each(func(organization string, otherRepos *repositories) bool {
		if organization == identity.Organization {
			return true
		}
		found, foundMatch = searchRepositories(otherRepos, "", matches)
		return !foundMatch
	})
	return found, foundMatch
}

func searchRepositories(
	repos *repositories,
	skipName string,
	matches func(string, *ClonedRepoState) bool,
) (Credential, bool) {
	var (
		found      Credential
		foundMatch bool
	)
	repos.each(func(name string, paths *clonePaths) bool {
		if skipName != "" && name == skipName {
			return true
		}
		found, foundMatch = firstMatch(paths, matches)
		return !foundMatch
	})
	return found, foundMatch
}

func firstMatch(paths *clonePaths, matches func(string, *ClonedRepoState) bool) (Credential, bool) {
	var (
		found      Credential
		foundMatch bool
	)
	paths.each(func(clonePath string, state *ClonedRepoState) bool {
		if matches(clonePath, state) {
			found, foundMatch = state.Active, true
			return false
		}
		return true
	})
	return found, foundMatch
}

func (it *CredentialGraph) repositoryNode(identity RepositoryIdentity) *clonePaths {
	orgs := it.identities.getOrCreate(identity.Key(), newOrderedMap[string, *repositories])
	repos := orgs.getOrCreate(identity.Organization, newOrderedMap[string, *clonePaths])
	return repos.getOrCreate(identity.Name, newOrderedMap[string, *ClonedRepoState])
}
