package scheduler

import "errors"

var (
	// ErrInvalidFrequency é retornado para uma frequência que não é hourly,
	// daily, weekly ou um número positivo de minutos
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrTaskNotFound é retornado para um id não registrado
	ErrTaskNotFound = errors.New("task not found")
	// ErrUnknownTaskType é registrado quando nenhum runner trata o tipo de tarefa
	ErrUnknownTaskType = errors.New("unsupported task type")
)
