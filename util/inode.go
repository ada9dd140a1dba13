package util

import (
	"sync"
)

// RootInode is the inode number of the mount root.
const RootInode uint64 = 1

var (
	highestInode = RootInode
	// could use atomic package for better performance, but this is simpler
	inodeLock = sync.Mutex{}
)

// NextInode hands out a fresh inode number. Inode 1 is reserved for the
// root dentry; everything else gets the next counter value.
func NextInode() uint64 {
	inodeLock.Lock()
	defer inodeLock.Unlock()
	highestInode++
	return highestInode
}
