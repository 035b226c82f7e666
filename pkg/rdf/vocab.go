package rdf

// RDF vocabulary
var (
	RDFType      = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	RDFProperty  = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#Property")
	RDFStatement = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#Statement")
	RDFSubject   = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#subject")
	RDFPredicate = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#predicate")
	RDFObject    = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#object")
	RDFList      = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#List")
	RDFFirst     = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	RDFRest      = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	RDFNil       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
	RDFValue     = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#value")
	RDFAlt       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#Alt")
	RDFBag       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#Bag")
	RDFSeq       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#Seq")
	RDFXML       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#XMLLiteral")
)

// RDFS vocabulary
var (
	RDFSResource                    = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#Resource")
	RDFSClass                       = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#Class")
	RDFSLiteral                     = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#Literal")
	RDFSDatatype                    = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#Datatype")
	RDFSContainer                   = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#Container")
	RDFSContainerMembershipProperty = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#ContainerMembershipProperty")
	RDFSDomain                      = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#domain")
	RDFSRange                       = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#range")
	RDFSSubClassOf                  = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#subClassOf")
	RDFSSubPropertyOf               = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#subPropertyOf")
	RDFSMember                      = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#member")
	RDFSSeeAlso                     = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#seeAlso")
	RDFSIsDefinedBy                 = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#isDefinedBy")
	RDFSComment                     = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#comment")
	RDFSLabel                       = NewNamedNode("http://www.w3.org/2000/01/rdf-schema#label")
)

// OWL vocabulary
var (
	OWLClass              = NewNamedNode("http://www.w3.org/2002/07/owl#Class")
	OWLTransitiveProperty = NewNamedNode("http://www.w3.org/2002/07/owl#TransitiveProperty")
	OWLSameAs             = NewNamedNode("http://www.w3.org/2002/07/owl#sameAs")
	OWLEquivalentClass    = NewNamedNode("http://www.w3.org/2002/07/owl#equivalentClass")
	OWLEquivalentProperty = NewNamedNode("http://www.w3.org/2002/07/owl#equivalentProperty")
	OWLInverseOf          = NewNamedNode("http://www.w3.org/2002/07/owl#inverseOf")
)
