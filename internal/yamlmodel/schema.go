package yamlmodel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type document struct {
	System *systemDoc `yaml:"system"`
}

type systemDoc struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Components []componentDoc `yaml:"components"`
}

type componentDoc struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	Parent        string            `yaml:"parent"`
	Functions     []functionDoc     `yaml:"functions"`
	Threads       []taskDoc         `yaml:"threads"`
	CommTasks     []taskDoc         `yaml:"comm_tasks"`
	ListenerTasks []taskDoc         `yaml:"listener_tasks"`
	HwResources   []resourceDoc     `yaml:"hw_resources"`
	SwResources   []resourceDoc     `yaml:"sw_resources"`
	Relations     []relationDoc     `yaml:"relations"`
	CommRelations []commRelationDoc `yaml:"comm_relations"`
}

type fieldDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type modeDoc struct {
	Code        scalar `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type functionDoc struct {
	ID             string     `yaml:"id"`
	Name           string     `yaml:"name"`
	Parent         string     `yaml:"parent"`
	Inputs         []fieldDoc `yaml:"inputs"`
	Outputs        []fieldDoc `yaml:"outputs"`
	ModesEnabled   *bool      `yaml:"modes_enabled"`
	Modes          []modeDoc  `yaml:"modes"`
	Qualifications []string   `yaml:"qualifications"`
	Contributions  []string   `yaml:"contributions"`
}

// taskDoc covers threads, comm tasks and listener tasks; translate rejects
// keys that do not apply to the kind being read. DataStructure stays a raw
// node so a malformed list is reported on its element alone.
type taskDoc struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Parent          string    `yaml:"parent"`
	PeriodMS        int       `yaml:"period_ms"`
	DataStructure   yaml.Node `yaml:"data_structure"`
	PairedComponent string    `yaml:"paired_component"`
	PairedTask      string    `yaml:"paired_task"`
	ModesEnabled    *bool     `yaml:"modes_enabled"`
	Modes           []modeDoc `yaml:"modes"`
	Qualifications  []string  `yaml:"qualifications"`
	Contributions   []string  `yaml:"contributions"`
}

type resourceDoc struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Parent        string    `yaml:"parent"`
	Description   string    `yaml:"description"`
	DataStructure yaml.Node `yaml:"data_structure"`
}

type relationDoc struct {
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Operator string `yaml:"operator"`
}

type commRelationDoc struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// scalar accepts any scalar node (int, string, bool) as its literal text.
type scalar string

func (s *scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	*s = scalar(value.Value)
	return nil
}
