package xmlmodel

// document mirrors the export layout one-to-one. The root element name is
// not checked; translation into the model happens in translate.go.
type document struct {
	ID         string          `xml:"id,attr"`
	Name       string          `xml:"name,attr"`
	Components []componentElem `xml:"cpc"`
}

type componentElem struct {
	ID            string             `xml:"id,attr"`
	Name          string             `xml:"name,attr"`
	Description   string             `xml:"description,attr"`
	ParentID      string             `xml:"id_cim_parent,attr"`
	Functions     []functionElem     `xml:"function"`
	Threads       []taskElem         `xml:"thread"`
	CommThreads   []taskElem         `xml:"commThread"`
	Listeners     []taskElem         `xml:"listenerThread"`
	HwResources   []hwResourceElem   `xml:"hw_resource"`
	SwResources   []swResourceElem   `xml:"sw_resource"`
	Relations     []relationElem     `xml:"relation"`
	CommRelations []commRelationElem `xml:"commRelation"`
}

// annotated holds the attributes shared by functions and every task kind.
type annotated struct {
	ID                    string `xml:"id,attr"`
	Name                  string `xml:"name,attr"`
	ParentID              string `xml:"id_cim_parent,attr"`
	OperationModesEnabled string `xml:"operation_modes_enabled,attr"`
	OperationModes        string `xml:"operation_modes,attr"`
	Qualifications        string `xml:"qualification_array,attr"`
	Contributions         string `xml:"contribution_array,attr"`
}

type functionElem struct {
	annotated
	InputParameters  string `xml:"input_parameters,attr"`
	OutputParameters string `xml:"output_parameters,attr"`
}

type taskElem struct {
	annotated
	Interval              string `xml:"interval_in_milliseconds,attr"`
	DataStructure         string `xml:"data_structure,attr"`
	DependumDataStructure string `xml:"dependum_data_structure,attr"`
	PairedComponentID     string `xml:"comm_threadCPCId,attr"`
	PairedTaskID          string `xml:"comm_threadId,attr"`
}

type hwResourceElem struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	ParentID    string `xml:"id_cim_parent,attr"`
	Description string `xml:"integration_operation_description,attr"`
}

type swResourceElem struct {
	ID                    string `xml:"id,attr"`
	Name                  string `xml:"name,attr"`
	ParentID              string `xml:"id_cim_parent,attr"`
	Description           string `xml:"description,attr"`
	DataStructure         string `xml:"data_structure,attr"`
	DependumDataStructure string `xml:"dependum_data_structure,attr"`
}

type relationElem struct {
	Source   string `xml:"source,attr"`
	Target   string `xml:"target,attr"`
	Operator string `xml:"operator,attr"`
}

type commRelationElem struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}
