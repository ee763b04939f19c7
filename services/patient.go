package services

import (
	"github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/dto"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
)

// PatientService exposes the staff-facing patient directory lookup.
type PatientService struct {
	context.DefaultService

	sqlSvc *SqlService

	users *repositories.UserRepository
}

const PATIENT_SVC = "patient_svc"

const patientSearchLimit = 20

func (svc PatientService) Id() string {
	return PATIENT_SVC
}

func (svc *PatientService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.users = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *PatientService) Search(query string) ([]dto.UserInfo, error) {
	if query == "" {
		return []dto.UserInfo{}, nil
	}

	patients, err := svc.users.SearchPatients(query, patientSearchLimit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	results := make([]dto.UserInfo, 0, len(patients))
	for i := range patients {
		results = append(results, userInfo(&patients[i]))
	}
	return results, nil
}
