package storage

import (
	"errors"

	"videoflow/internal/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDBNotInitialized = errors.New("database not initialized")

// SaveProject upserts a project together with its scenes, replacing
// any scene rows that no longer exist (mirrors the wizard's
// whole-project put semantics).
func SaveProject(project *types.Project) error {
	if DB == nil {
		return ErrDBNotInitialized
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Re-parsing discards the previous scene list wholesale.
		if err := tx.Where("project_id = ?", project.Id).Delete(&types.Scene{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(project).Error
	})
}

func GetProject(projectId string) (*types.Project, error) {
	if DB == nil {
		return nil, ErrDBNotInitialized
	}

	var project types.Project
	err := DB.
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("AudioTracks").
		Where("id = ?", projectId).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func ListProjects(limit int) ([]types.Project, error) {
	if DB == nil {
		return nil, ErrDBNotInitialized
	}

	var projects []types.Project
	query := DB.Order("update_time desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func DeleteProject(projectId string) error {
	if DB == nil {
		return ErrDBNotInitialized
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectId).Delete(&types.Scene{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectId).Delete(&types.AudioTrack{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", projectId).Delete(&types.Project{}).Error
	})
}

// UpdateProjectStatus touches only the status column so concurrent
// scene writes are not clobbered by a stale project snapshot.
func UpdateProjectStatus(projectId, status string) error {
	if DB == nil {
		return ErrDBNotInitialized
	}
	return DB.Model(&types.Project{}).Where("id = ?", projectId).Update("status", status).Error
}

// UpdateScene persists in-place mutations later phases make to a scene
// (generated asset references, degradation marker).
func UpdateScene(scene *types.Scene) error {
	if DB == nil {
		return ErrDBNotInitialized
	}
	return DB.Save(scene).Error
}

func GetScene(sceneId string) (*types.Scene, error) {
	if DB == nil {
		return nil, ErrDBNotInitialized
	}

	var scene types.Scene
	if err := DB.Where("id = ?", sceneId).First(&scene).Error; err != nil {
		return nil, err
	}
	return &scene, nil
}
