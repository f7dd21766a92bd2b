package dataroom

import "dataroom/internal/domain/repositories"

// Store bundles the persistence collaborator of one backend
type Store struct {
	Rooms     RoomRepository
	Folders   FolderRepository
	Files     FileRepository
	TxManager repositories.TransactionManager
}
