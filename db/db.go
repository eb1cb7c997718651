// Package db handles the flat-file JSON stores and all core business
// logic of the forum: user accounts, the board tree and per-post files.
package db

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
	"github.com/rthearn/ivory/util"
)

// Post ids historically start high, so they are not confused with other
// numeric keys in old client URLs
const firstPostID = 1000000

// Shared mutable collections. Lock acquisition order, where a mutation
// touches more than one: post -> forum -> users.
var (
	usersMu sync.RWMutex
	users   []common.User

	forumMu sync.RWMutex
	forum   common.ForumTree

	postMu    sync.Mutex
	postLocks map[uint64]*sync.Mutex
)

// LoadDB reads all collections into memory and prepares the post
// directories
func LoadDB() (err error) {
	err = os.MkdirAll(filepath.Join(postDir(), "deleted"), 0700)
	if err != nil {
		return
	}

	usersMu.Lock()
	defer usersMu.Unlock()
	forumMu.Lock()
	defer forumMu.Unlock()
	postMu.Lock()
	defer postMu.Unlock()

	users = nil
	err = loadJSON(usersPath(), &users)
	if err != nil {
		return util.WrapError("loading users", err)
	}

	forum = common.ForumTree{}
	err = loadJSON(forumPath(), &forum)
	if err != nil {
		return util.WrapError("loading forum tree", err)
	}
	if forum.PostIndex < firstPostID {
		forum.PostIndex = firstPostID
	}

	postLocks = make(map[uint64]*sync.Mutex)
	return
}

func dataDir() string {
	return config.Get().DataDir
}

func usersPath() string {
	return filepath.Join(dataDir(), "users.json")
}

func forumPath() string {
	return filepath.Join(dataDir(), "forum.json")
}

func postDir() string {
	return filepath.Join(dataDir(), "posts")
}

// lockPost returns the mutex serializing mutations of a single post id,
// creating it on first use
func lockPost(id uint64) *sync.Mutex {
	postMu.Lock()
	defer postMu.Unlock()
	m, ok := postLocks[id]
	if !ok {
		m = new(sync.Mutex)
		postLocks[id] = m
	}
	return m
}

// mutateForum runs fn on the board tree under the write lock and
// persists the result. If fn or the file write fail, the pre-mutation
// tree is restored, so a failed operation is never observable as
// committed.
func mutateForum(fn func(f *common.ForumTree) error) error {
	forumMu.Lock()
	defer forumMu.Unlock()

	var snapshot common.ForumTree
	if err := clone(&snapshot, forum); err != nil {
		return common.ErrPersistence(err)
	}
	if err := fn(&forum); err != nil {
		forum = snapshot
		return err
	}
	if err := saveJSON(forumPath(), forum); err != nil {
		forum = snapshot
		return common.ErrPersistence(err)
	}
	return nil
}

// mutateUsers is the users-collection counterpart of mutateForum
func mutateUsers(fn func(us *[]common.User) error) error {
	usersMu.Lock()
	defer usersMu.Unlock()

	var snapshot []common.User
	if err := clone(&snapshot, users); err != nil {
		return common.ErrPersistence(err)
	}
	if err := fn(&users); err != nil {
		users = snapshot
		return err
	}
	if err := saveJSON(usersPath(), users); err != nil {
		users = snapshot
		return common.ErrPersistence(err)
	}
	return nil
}
